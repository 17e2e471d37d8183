package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/filter"
	"github.com/Zachkp/portfolio/internal/forms"
	"github.com/Zachkp/portfolio/internal/httpclient"
	"github.com/Zachkp/portfolio/internal/site"
	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	msgContactSent    = "Your message has been sent successfully. I will get back to you soon!"
	msgContactFailed  = "Something went wrong. Please try again later."
	msgContactRefused = "Failed to send message"

	// defaultViewport is assumed when the client did not report its width.
	defaultViewport = 1024
)

// carouselView is one rendered state of the testimonial carousel.
type carouselView struct {
	Items      []site.Testimonial
	Page       int
	Pages      int
	PageSize   int
	HasPrev    bool
	HasNext    bool
	IntervalMS int64
}

func viewportWidth(c *gin.Context) int {
	for _, raw := range []string{c.Query("vw"), c.GetHeader("Sec-CH-Viewport-Width")} {
		if vw, err := strconv.Atoi(raw); err == nil && vw > 0 {
			return vw
		}
	}
	return defaultViewport
}

// testimonialView paginates the testimonials for a viewport width and moves
// from page in direction dir ("prev", "next" clamp; "auto" wraps).
func (s *Server) testimonialView(page, vw int, dir string) carouselView {
	size := filter.PageSize(vw, s.opts.breakpoint)
	pages := filter.Paginate(s.deps.Site.Testimonials, size)

	car := filter.NewCarousel(len(pages))
	car.Go(page)
	switch dir {
	case "prev":
		car.Prev()
	case "next":
		car.Next()
	case "auto":
		car.Advance()
	}

	v := carouselView{
		Page:       car.Current(),
		Pages:      car.Pages(),
		PageSize:   size,
		HasPrev:    car.HasPrev(),
		HasNext:    car.HasNext(),
		IntervalMS: s.opts.carouselInterval.Milliseconds(),
	}
	if v.Pages > 0 {
		v.Items = pages[v.Page]
	}
	return v
}

func (s *Server) testimonials(c *gin.Context) {
	vw := viewportWidth(c)
	page, _ := strconv.Atoi(c.Query("page"))
	dir := c.Query("dir")

	// A page size change (the viewport crossed the breakpoint) starts over.
	if prev, err := strconv.Atoi(c.Query("size")); err == nil && prev != filter.PageSize(vw, s.opts.breakpoint) {
		page, dir = 0, ""
	}
	s.pages.fragment(c, http.StatusOK, "testimonials", s.testimonialView(page, vw, dir))
}

// contactForm is the state of the contact form between submissions.
type contactForm struct {
	Values  api.ContactMessage
	Errors  forms.ValidationErrors
	Success string
	Failure string
}

func (s *Server) contactPage(c *gin.Context) {
	s.render(c, http.StatusOK, "contact", "Contact", gin.H{
		"form":    contactForm{},
		"mapsKey": s.opts.mapsKey,
	})
}

func (s *Server) contactSubmit(c *gin.Context) {
	form := contactForm{Values: api.ContactMessage{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}}

	if errs := forms.ValidateContact(&form.Values); len(errs) > 0 {
		form.Errors = errs
		s.contactResponse(c, http.StatusUnprocessableEntity, form)
		return
	}

	res, err := s.deps.Contact.Send(c.Request.Context(), form.Values)
	switch {
	case err != nil:
		s.logger.Warn("contact submission failed", slog.String("error", err.Error()))
		form.Failure = msgContactFailed
		if msg := httpclient.ServerMessage(err); msg != "" {
			form.Failure = msg
		}
	case !res.Success:
		form.Failure = msgContactRefused
		if res.Message != "" {
			form.Failure = res.Message
		}
	default:
		form = contactForm{Success: msgContactSent}
	}
	s.contactResponse(c, http.StatusOK, form)
}

func (s *Server) contactResponse(c *gin.Context, status int, form contactForm) {
	if isHTMX(c) {
		// htmx only swaps 2xx responses.
		s.pages.fragment(c, http.StatusOK, "contact-form", form)
		return
	}
	s.render(c, status, "contact", "Contact", gin.H{
		"form":    form,
		"mapsKey": s.opts.mapsKey,
	})
}

func (s *Server) toggleTheme(c *gin.Context) {
	s.deps.Theme.Toggle()
	s.themeChanged(c)
}

func (s *Server) setTheme(c *gin.Context) {
	m, err := theme.ParseMode(c.PostForm("mode"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err := s.deps.Theme.Set(m); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.themeChanged(c)
}

// themeChanged reloads the current page so the new palette applies.
func (s *Server) themeChanged(c *gin.Context) {
	if isHTMX(c) {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, sameOriginReferer(c))
}

func sameOriginReferer(c *gin.Context) string {
	u, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || u.Host != c.Request.Host || u.Path == "" {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
