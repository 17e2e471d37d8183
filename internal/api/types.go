// Package api maps portfolio domain operations onto the REST endpoints of the
// content API. It holds no caching, retry or transformation logic.
package api

import (
	"context"
	"net/url"
)

// Project is a portfolio project. Content is markdown.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Summary      string   `json:"summary"`
	Thumbnail    string   `json:"thumbnail"`
	Images       []string `json:"images"`
	Technologies []string `json:"technologies"`
	Category     string   `json:"category"`
	Featured     bool     `json:"featured"`
	DemoURL      string   `json:"demoUrl,omitempty"`
	RepoURL      string   `json:"repoUrl,omitempty"`
	CompletedAt  string   `json:"completedAt"`
	Content      string   `json:"content"`
}

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// BlogPost is a blog article. Content is pre-rendered HTML.
type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage"`
	Author      Author   `json:"author"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	ReadTime    int      `json:"readTime"`
	Featured    bool     `json:"featured"`
}

type ProjectFilters struct {
	Category   string `json:"category,omitempty"`
	Technology string `json:"technology,omitempty"`
	Search     string `json:"search,omitempty"`
}

// Values encodes the non-empty filters as query parameters.
func (f ProjectFilters) Values() url.Values {
	return values("category", f.Category, "technology", f.Technology, "search", f.Search)
}

type BlogFilters struct {
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Search   string `json:"search,omitempty"`
}

func (f BlogFilters) Values() url.Values {
	return values("category", f.Category, "tag", f.Tag, "search", f.Search)
}

// CategoryWithCount pairs a label with how many items carry it.
type CategoryWithCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TagWithCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ContactMessage is a contact form submission. All four fields are required;
// the server decides deliverability.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Doer is the request capability the resource modules need.
type Doer interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

func values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			v.Set(pairs[i], pairs[i+1])
		}
	}
	return v
}
