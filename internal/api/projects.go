package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/Zachkp/portfolio/internal/httpclient"
)

// Projects is the /projects resource.
type Projects struct {
	client Doer
}

func NewProjects(client Doer) *Projects {
	return &Projects{client: client}
}

// List returns projects matching the filters, in server order.
func (p *Projects) List(ctx context.Context, filters ProjectFilters) ([]Project, error) {
	var out []Project
	if err := p.client.Get(ctx, "/projects", filters.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Projects) Featured(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := p.client.Get(ctx, "/projects/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BySlug fails with httpclient.KindNotFound when the project does not exist,
// whether the server answers 404 or an empty body.
func (p *Projects) BySlug(ctx context.Context, slug string) (*Project, error) {
	path, err := slugPath("/projects/", slug)
	if err != nil {
		return nil, err
	}
	var out *Project
	if err := p.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil || (out.ID == "" && out.Slug == "") {
		return nil, notFound(path)
	}
	return out, nil
}

func (p *Projects) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := p.client.Get(ctx, "/projects/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Projects) Technologies(ctx context.Context) ([]string, error) {
	var out []string
	if err := p.client.Get(ctx, "/projects/technologies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func slugPath(prefix, slug string) (string, error) {
	if slug == "" {
		return "", &httpclient.Error{
			Kind:   httpclient.KindRequestSetup,
			Method: http.MethodGet,
			Path:   prefix,
			Err:    errors.New("slug is required"),
		}
	}
	return prefix + url.PathEscape(slug), nil
}

func notFound(path string) error {
	return &httpclient.Error{
		Kind:   httpclient.KindNotFound,
		Status: http.StatusOK,
		Method: http.MethodGet,
		Path:   path,
		Err:    errors.New("empty response"),
	}
}
