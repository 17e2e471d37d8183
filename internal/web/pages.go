package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/filter"
	"github.com/Zachkp/portfolio/internal/httpclient"
)

// User-visible state messages.
const (
	msgFeaturedError    = "Failed to load projects. Please try again."
	msgFeaturedEmpty    = "No projects to show yet."
	msgProjectsError    = "Error loading projects. Please try again."
	msgProjectsEmpty    = "No projects found matching your filters."
	msgProjectNotFound  = "Project not found"
	msgProjectError     = "Error loading project. Please try again."
	msgPostsError       = "Error loading posts. Please try again."
	msgPostsEmpty       = "No posts found matching this criteria."
	msgPostNotFound     = "Post not found."
	msgPostError        = "Error loading post. Please try again."
	maxTechnologyFilter = 5
)

func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()
	featured := newListView(s.featuredProjects(ctx), msgFeaturedError, msgFeaturedEmpty)

	s.render(c, http.StatusOK, "home", "Home", gin.H{
		"featured":     featured,
		"skillGroups":  s.deps.Site.SkillGroups(),
		"testimonials": s.testimonialView(0, viewportWidth(c), ""),
	})
}

func (s *Server) about(c *gin.Context) {
	s.render(c, http.StatusOK, "about", "About", gin.H{
		"experience":  s.deps.Site.Experience,
		"education":   s.deps.Site.Education,
		"skillGroups": s.deps.Site.SkillGroups(),
	})
}

func (s *Server) projectList(c *gin.Context) {
	ctx := c.Request.Context()
	sel := filter.Selection{
		Category:   c.DefaultQuery("category", filter.All),
		Technology: c.DefaultQuery("technology", filter.All),
		Search:     c.Query("search"),
	}

	projects := s.projectsList(ctx)
	var view listView[api.Project]
	if projects.Err != nil {
		view = listView[api.Project]{Error: msgProjectsError}
	} else {
		projects.Data = filter.Projects(projects.Data, sel)
		view = newListView(projects, msgProjectsError, msgProjectsEmpty)
	}

	data := gin.H{
		"projects":     view,
		"selection":    sel,
		"categories":   filter.Labels(s.projectCategories(ctx).Data),
		"technologies": filter.Labels(filter.Limit(s.projectTechnologies(ctx).Data, maxTechnologyFilter)),
	}
	if isHTMX(c) {
		s.pages.fragment(c, http.StatusOK, "project-results", data)
		return
	}
	s.render(c, http.StatusOK, "projects", "Projects", data)
}

func (s *Server) projectDetail(c *gin.Context) {
	slug := c.Param("slug")
	r := s.project(c.Request.Context(), slug)

	switch {
	case httpclient.IsNotFound(r.Err) || (r.Err == nil && r.Data == nil):
		s.render(c, http.StatusNotFound, "project", "Project not found", gin.H{"notFound": msgProjectNotFound})
		return
	case r.Err != nil:
		s.logger.Warn("project load failed", slog.String("slug", slug), slog.String("error", r.Err.Error()))
		s.render(c, http.StatusBadGateway, "project", "Error", gin.H{"error": msgProjectError})
		return
	}

	body, err := s.md.Render(r.Data.Content)
	if err != nil {
		s.logger.Warn("project content not rendered", slog.String("slug", slug), slog.String("error", err.Error()))
		body = template.HTML(template.HTMLEscapeString(r.Data.Content))
	}
	s.render(c, http.StatusOK, "project", r.Data.Title, gin.H{
		"project": r.Data,
		"body":    body,
	})
}

func (s *Server) blogList(c *gin.Context) {
	ctx := c.Request.Context()
	filters := api.BlogFilters{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}
	q := strings.TrimSpace(c.Query("q"))

	var view listView[api.BlogPost]
	if q != "" {
		view = newListView(s.blogSearch(ctx, q), msgPostsError, msgPostsEmpty)
	} else {
		view = newListView(s.blogPosts(ctx, filters), msgPostsError, msgPostsEmpty)
	}

	data := gin.H{
		"posts":      view,
		"filters":    filters,
		"query":      q,
		"categories": s.blogCategories(ctx).Data,
		"tags":       s.blogTags(ctx).Data,
	}
	if q == "" && filters.Category == "" && filters.Tag == "" {
		if featured := s.featuredBlogPosts(ctx); featured.Err == nil && len(featured.Data) > 0 {
			data["featuredPost"] = featured.Data[0]
		}
	}
	if isHTMX(c) {
		s.pages.fragment(c, http.StatusOK, "post-results", data)
		return
	}
	s.render(c, http.StatusOK, "blog", "Blog", data)
}

func (s *Server) blogDetail(c *gin.Context) {
	slug := c.Param("slug")
	r := s.blogPost(c.Request.Context(), slug)

	switch {
	case httpclient.IsNotFound(r.Err) || (r.Err == nil && r.Data == nil):
		s.render(c, http.StatusNotFound, "post", "Post not found", gin.H{"notFound": msgPostNotFound})
		return
	case r.Err != nil:
		s.logger.Warn("post load failed", slog.String("slug", slug), slog.String("error", r.Err.Error()))
		s.render(c, http.StatusBadGateway, "post", "Error", gin.H{"error": msgPostError})
		return
	}

	s.render(c, http.StatusOK, "post", r.Data.Title, gin.H{
		"post": r.Data,
		// Post bodies arrive as HTML rendered by the content API.
		"body": template.HTML(r.Data.Content),
	})
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "not_found", "Page Not Found", nil)
}
