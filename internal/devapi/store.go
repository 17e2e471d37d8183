package devapi

import (
	"slices"
	"strings"
	"sync"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/filter"
)

// Store answers queries over the current Content snapshot. Reload swaps the
// snapshot atomically.
type Store struct {
	mu      sync.RWMutex
	content *Content
}

func NewStore(c *Content) *Store {
	if c == nil {
		c = &Content{}
	}
	return &Store{content: c}
}

func (s *Store) Replace(c *Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = c
}

func (s *Store) snapshot() *Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

func (s *Store) Projects(f api.ProjectFilters) []api.Project {
	return filter.Projects(s.snapshot().Projects, filter.Selection{
		Category:   f.Category,
		Technology: f.Technology,
		Search:     f.Search,
	})
}

func (s *Store) FeaturedProjects() []api.Project {
	var out []api.Project
	for _, p := range s.snapshot().Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Project(slug string) (api.Project, bool) {
	for _, p := range s.snapshot().Projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return api.Project{}, false
}

// ProjectCategories lists distinct categories in first-seen order.
func (s *Store) ProjectCategories() []string {
	return distinct(s.snapshot().Projects, func(p api.Project) []string { return []string{p.Category} })
}

func (s *Store) ProjectTechnologies() []string {
	return distinct(s.snapshot().Projects, func(p api.Project) []string { return p.Technologies })
}

func (s *Store) Posts(f api.BlogFilters) []api.BlogPost {
	return filter.Posts(s.snapshot().Posts, filter.Selection{
		Category:   f.Category,
		Technology: f.Tag,
		Search:     f.Search,
	})
}

func (s *Store) FeaturedPosts() []api.BlogPost {
	var out []api.BlogPost
	for _, p := range s.snapshot().Posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Post(slug string) (api.BlogPost, bool) {
	for _, p := range s.snapshot().Posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return api.BlogPost{}, false
}

func (s *Store) PostCategories() []api.CategoryWithCount {
	return counted(s.snapshot().Posts, func(p api.BlogPost) []string { return p.Categories })
}

func (s *Store) PostTags() []api.TagWithCount {
	cats := counted(s.snapshot().Posts, func(p api.BlogPost) []string { return p.Tags })
	out := make([]api.TagWithCount, len(cats))
	for i, c := range cats {
		out[i] = api.TagWithCount(c)
	}
	return out
}

// SearchPosts matches q against title, excerpt, tags and the body text.
func (s *Store) SearchPosts(q string) []api.BlogPost {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []api.BlogPost{}
	if q == "" {
		return out
	}
	for _, p := range s.snapshot().Posts {
		fields := append([]string{p.Title, p.Excerpt, p.Content}, p.Tags...)
		if slices.ContainsFunc(fields, func(f string) bool { return strings.Contains(strings.ToLower(f), q) }) {
			out = append(out, p)
		}
	}
	return out
}

func distinct[T any](items []T, labels func(T) []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, it := range items {
		for _, l := range labels(it) {
			if l != "" && !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	return out
}

func counted[T any](items []T, labels func(T) []string) []api.CategoryWithCount {
	counts := map[string]int{}
	for _, it := range items {
		for _, l := range labels(it) {
			counts[l]++
		}
	}
	out := []api.CategoryWithCount{}
	for _, name := range distinct(items, labels) {
		out = append(out, api.CategoryWithCount{Name: name, Count: counts[name]})
	}
	return out
}
