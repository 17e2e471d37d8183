package devapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/forms"
)

// Server exposes a Store over the REST contract the site consumes.
type Server struct {
	store  *Store
	mailer Mailer
	logger *slog.Logger
	engine *gin.Engine
}

func NewServer(store *Store, mailer Mailer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if mailer == nil {
		mailer = LogMailer{Logger: logger}
	}
	s := &Server{store: store, mailer: mailer, logger: logger}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.Default()

	r.GET("/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(s.store.Projects(api.ProjectFilters{
			Category:   c.Query("category"),
			Technology: c.Query("technology"),
			Search:     c.Query("search"),
		})))
	})
	r.GET("/projects/featured", func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(s.store.FeaturedProjects()))
	})
	r.GET("/projects/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.ProjectCategories())
	})
	r.GET("/projects/technologies", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.ProjectTechnologies())
	})
	r.GET("/projects/:slug", func(c *gin.Context) {
		p, ok := s.store.Project(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/blog", func(c *gin.Context) {
		posts := s.store.Posts(api.BlogFilters{
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
			Search:   c.Query("search"),
		})
		c.JSON(http.StatusOK, gin.H{"blogs": orEmpty(posts)})
	})
	r.GET("/blog/featured", func(c *gin.Context) {
		c.JSON(http.StatusOK, orEmpty(s.store.FeaturedPosts()))
	})
	r.GET("/blog/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.PostCategories())
	})
	r.GET("/blog/tags", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.PostTags())
	})
	r.GET("/blog/search", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.SearchPosts(c.Query("query")))
	})
	r.GET("/blog/:slug", func(c *gin.Context) {
		p, ok := s.store.Post(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.POST("/contact", s.contact)
	return r
}

func (s *Server) contact(c *gin.Context) {
	var msg api.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, api.ContactResult{Message: "Invalid request body"})
		return
	}
	if errs := forms.ValidateContact(&msg); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errs.Error(), "errors": errs})
		return
	}
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, api.ContactResult{
			Message: "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	c.JSON(http.StatusOK, api.ContactResult{Success: true, Message: "Thank you for your message! I'll get back to you soon."})
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev api listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dev api: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
