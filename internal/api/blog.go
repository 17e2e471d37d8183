package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Blog is the /blog resource.
type Blog struct {
	client Doer
}

func NewBlog(client Doer) *Blog {
	return &Blog{client: client}
}

// postList accepts both a bare array and the {"blogs": [...]} envelope the
// list endpoint returns.
type postList []BlogPost

func (l *postList) UnmarshalJSON(data []byte) error {
	var posts []BlogPost
	if err := json.Unmarshal(data, &posts); err == nil {
		*l = posts
		return nil
	}
	var envelope struct {
		Blogs []BlogPost `json:"blogs"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("blog list is neither an array nor an envelope: %w", err)
	}
	*l = envelope.Blogs
	return nil
}

func (b *Blog) List(ctx context.Context, filters BlogFilters) ([]BlogPost, error) {
	var out postList
	if err := b.client.Get(ctx, "/blog", filters.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Blog) Featured(ctx context.Context) ([]BlogPost, error) {
	var out []BlogPost
	if err := b.client.Get(ctx, "/blog/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BySlug fails with httpclient.KindNotFound when the post does not exist.
func (b *Blog) BySlug(ctx context.Context, slug string) (*BlogPost, error) {
	path, err := slugPath("/blog/", slug)
	if err != nil {
		return nil, err
	}
	var out *BlogPost
	if err := b.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil || (out.ID == "" && out.Slug == "") {
		return nil, notFound(path)
	}
	return out, nil
}

func (b *Blog) Categories(ctx context.Context) ([]CategoryWithCount, error) {
	var out []CategoryWithCount
	if err := b.client.Get(ctx, "/blog/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Blog) Tags(ctx context.Context) ([]TagWithCount, error) {
	var out []TagWithCount
	if err := b.client.Get(ctx, "/blog/tags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search runs a free-text search on the server.
func (b *Blog) Search(ctx context.Context, query string) ([]BlogPost, error) {
	var out []BlogPost
	if err := b.client.Get(ctx, "/blog/search", url.Values{"query": {query}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
