package web

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// countPageViews counts page renders per route. Static assets, fragments,
// probes and visitors sending DNT are skipped.
func (s *Server) countPageViews() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/metrics" || path == "/healthz" ||
			c.GetHeader("HX-Request") == "true" ||
			c.GetHeader("DNT") == "1" {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "not_found"
		}
		s.deps.Metrics.PageViews.WithLabelValues(route).Inc()
	}
}

// requireToken guards a route with a bearer token. An empty token leaves the
// route open.
func (s *Server) requireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
