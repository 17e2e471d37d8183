// Package web renders the portfolio pages and HTMX fragments.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/filter"
	"github.com/Zachkp/portfolio/internal/markdown"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/query"
	"github.com/Zachkp/portfolio/internal/site"
	"github.com/Zachkp/portfolio/internal/theme"
)

//go:embed static
var staticFS embed.FS

// ProjectsAPI is what the pages need from the projects resource.
type ProjectsAPI interface {
	List(ctx context.Context, filters api.ProjectFilters) ([]api.Project, error)
	Featured(ctx context.Context) ([]api.Project, error)
	BySlug(ctx context.Context, slug string) (*api.Project, error)
	Categories(ctx context.Context) ([]string, error)
	Technologies(ctx context.Context) ([]string, error)
}

// BlogAPI is what the pages need from the blog resource.
type BlogAPI interface {
	List(ctx context.Context, filters api.BlogFilters) ([]api.BlogPost, error)
	Featured(ctx context.Context) ([]api.BlogPost, error)
	BySlug(ctx context.Context, slug string) (*api.BlogPost, error)
	Categories(ctx context.Context) ([]api.CategoryWithCount, error)
	Tags(ctx context.Context) ([]api.TagWithCount, error)
	Search(ctx context.Context, q string) ([]api.BlogPost, error)
}

type ContactAPI interface {
	Send(ctx context.Context, msg api.ContactMessage) (api.ContactResult, error)
}

// Theme is the theme capability the pages use.
type Theme interface {
	theme.Reader
	theme.Toggler
	Root() theme.DocumentRoot
}

// Deps are the services a Server renders from.
type Deps struct {
	Projects ProjectsAPI
	Blog     BlogAPI
	Contact  ContactAPI
	Cache    *query.Cache
	Theme    Theme
	Site     *site.Site
	Metrics  *metrics.Metrics
}

type options struct {
	logger           *slog.Logger
	breakpoint       int
	carouselInterval time.Duration
	metricsToken     string
	mapsKey          string
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBreakpoint sets the viewport width below which the testimonial
// carousel shows one item per page.
func WithBreakpoint(px int) Option {
	return func(o *options) {
		o.breakpoint = px
	}
}

func WithCarouselInterval(d time.Duration) Option {
	return func(o *options) {
		o.carouselInterval = d
	}
}

// WithMetricsToken requires "Authorization: Bearer <token>" on /metrics.
func WithMetricsToken(token string) Option {
	return func(o *options) {
		o.metricsToken = token
	}
}

// WithMapsKey passes the map widget key through to the contact page.
func WithMapsKey(key string) Option {
	return func(o *options) {
		o.mapsKey = key
	}
}

// Server owns the gin engine and the page handlers.
type Server struct {
	deps   Deps
	opts   options
	engine *gin.Engine
	pages  *renderer
	md     *markdown.Renderer
	logger *slog.Logger
}

func New(deps Deps, opts ...Option) (*Server, error) {
	o := options{
		logger:           slog.Default(),
		breakpoint:       filter.DefaultBreakpoint,
		carouselInterval: 8 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if deps.Cache == nil {
		deps.Cache = query.New()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Site == nil {
		s, err := site.Load()
		if err != nil {
			return nil, err
		}
		deps.Site = s
	}
	if deps.Projects == nil || deps.Blog == nil || deps.Contact == nil || deps.Theme == nil {
		return nil, errors.New("web: projects, blog, contact and theme are required")
	}

	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		deps:   deps,
		opts:   o,
		pages:  pages,
		md:     markdown.New(),
		logger: o.logger,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.Default()
	r.Use(s.countPageViews())

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.home)
	r.GET("/about", s.about)
	r.GET("/projects", s.projectList)
	r.GET("/projects/:slug", s.projectDetail)
	r.GET("/blog", s.blogList)
	r.GET("/blog/:slug", s.blogDetail)
	r.GET("/contact", s.contactPage)
	r.POST("/contact", s.contactSubmit)
	r.GET("/testimonials", s.testimonials)

	r.POST("/theme/toggle", s.toggleTheme)
	r.POST("/theme", s.setTheme)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", s.requireToken(s.opts.metricsToken), gin.WrapH(s.deps.Metrics.Handler()))

	r.NoRoute(s.notFound)
	return r
}

// Handler exposes the router (tests drive it with httptest).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	s.logger.Info("web server stopped")
	return nil
}
