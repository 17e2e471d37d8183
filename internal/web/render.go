package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/Zachkp/portfolio/internal/filter"
	"github.com/Zachkp/portfolio/internal/theme"
)

//go:embed templates
var templateFS embed.FS

var pageNames = []string{"home", "about", "projects", "project", "blog", "post", "contact", "not_found"}

// renderer holds one template set per page: the shared layout and partials
// plus the page's own "content" block.
type renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	base, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	r.base = base
	return r, nil
}

func (r *renderer) page(c *gin.Context, status int, name string, data gin.H) {
	c.Render(status, render.HTML{Template: r.pages[name], Name: "layout", Data: data})
}

func (r *renderer) fragment(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: r.base, Name: name, Data: data})
}

// render fills in the layout data every page shares and renders page.
func (s *Server) render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	root := s.deps.Theme.Root()
	mode := theme.Mode(root.DataTheme)

	data["title"] = title
	data["page"] = page
	data["theme"] = mode
	data["nextTheme"] = mode.Opposite()
	data["root"] = root
	data["themeCSS"] = theme.CSSVariables(mode)
	data["profile"] = s.deps.Site.Profile
	data["socials"] = s.deps.Site.Socials
	data["year"] = time.Now().Year()
	s.pages.page(c, status, page, data)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
		"truncate":   truncate,
		"title":      filter.Capitalize,
		"add":        func(a, b int) int { return a + b },
		"more": func(values []string, n int) int {
			return max(len(values)-n, 0)
		},
		"first": func(values []string, n int) []string {
			if len(values) <= n {
				return values
			}
			return values[:n]
		},
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// formatDate renders API dates as "January 2, 2006". Unparseable input is
// returned unchanged.
func formatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
