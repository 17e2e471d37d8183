package web

import (
	"context"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/query"
)

// Cache operation names. Keys of one operation are invalidated together.
const (
	KeyProjects            = "projects"
	KeyFeaturedProjects    = "featuredProjects"
	KeyProject             = "project"
	KeyProjectCategories   = "projectCategories"
	KeyProjectTechnologies = "projectTechnologies"
	KeyBlogPosts           = "blogPosts"
	KeyFeaturedBlogPosts   = "featuredBlogPosts"
	KeyBlogPost            = "blogPost"
	KeyBlogCategories      = "blogCategories"
	KeyBlogTags            = "blogTags"
	KeyBlogSearch          = "blogSearch"
)

func (s *Server) projectsList(ctx context.Context) query.Result[[]api.Project] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyProjects, nil), func(ctx context.Context) ([]api.Project, error) {
		return s.deps.Projects.List(ctx, api.ProjectFilters{})
	})
}

func (s *Server) featuredProjects(ctx context.Context) query.Result[[]api.Project] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyFeaturedProjects, nil), s.deps.Projects.Featured)
}

func (s *Server) project(ctx context.Context, slug string) query.Result[*api.Project] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyProject, slug), func(ctx context.Context) (*api.Project, error) {
		return s.deps.Projects.BySlug(ctx, slug)
	})
}

func (s *Server) projectCategories(ctx context.Context) query.Result[[]string] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyProjectCategories, nil), s.deps.Projects.Categories)
}

func (s *Server) projectTechnologies(ctx context.Context) query.Result[[]string] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyProjectTechnologies, nil), s.deps.Projects.Technologies)
}

func (s *Server) blogPosts(ctx context.Context, f api.BlogFilters) query.Result[[]api.BlogPost] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyBlogPosts, f), func(ctx context.Context) ([]api.BlogPost, error) {
		return s.deps.Blog.List(ctx, f)
	})
}

func (s *Server) featuredBlogPosts(ctx context.Context) query.Result[[]api.BlogPost] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyFeaturedBlogPosts, nil), s.deps.Blog.Featured)
}

func (s *Server) blogPost(ctx context.Context, slug string) query.Result[*api.BlogPost] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyBlogPost, slug), func(ctx context.Context) (*api.BlogPost, error) {
		return s.deps.Blog.BySlug(ctx, slug)
	})
}

func (s *Server) blogCategories(ctx context.Context) query.Result[[]api.CategoryWithCount] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyBlogCategories, nil), s.deps.Blog.Categories)
}

func (s *Server) blogTags(ctx context.Context) query.Result[[]api.TagWithCount] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyBlogTags, nil), s.deps.Blog.Tags)
}

func (s *Server) blogSearch(ctx context.Context, q string) query.Result[[]api.BlogPost] {
	return query.Fetch(ctx, s.deps.Cache, query.NewKey(KeyBlogSearch, q), func(ctx context.Context) ([]api.BlogPost, error) {
		return s.deps.Blog.Search(ctx, q)
	})
}

// listView is what a listing template needs: items, or exactly one of an
// error or empty message.
type listView[T any] struct {
	Items []T
	Error string
	Empty string
}

func newListView[T any](r query.Result[[]T], errMsg, emptyMsg string) listView[T] {
	switch {
	case r.Err != nil:
		return listView[T]{Error: errMsg}
	case len(r.Data) == 0:
		return listView[T]{Empty: emptyMsg}
	}
	return listView[T]{Items: r.Data}
}
