// Package app wires the client services together. It is the only place that
// knows how config maps onto constructors.
package app

import (
	"context"
	"io"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/httpclient"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/query"
	"github.com/Zachkp/portfolio/internal/site"
	"github.com/Zachkp/portfolio/internal/storage"
	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/Zachkp/portfolio/internal/web"
)

// App holds one instance of every client service.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Storage  storage.Store
	Client   *httpclient.Client
	Projects *api.Projects
	Blog     *api.Blog
	Contact  *api.Contact
	Theme    *theme.Service
	Cache    *query.Cache
	Metrics  *metrics.Metrics

	closer io.Closer
}

// New builds the services in dependency order. Storage that cannot be opened
// degrades to storage.Unavailable rather than failing startup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}

	db, err := storage.Open(ctx, cfg.Storage.Path, logger)
	if err != nil {
		logger.Warn("client storage unavailable, continuing without persistence", slog.String("error", err.Error()))
		a.Storage = storage.Unavailable{}
	} else {
		a.Storage = db
		a.closer = db
	}

	a.Client, err = httpclient.New(cfg.API.URL,
		httpclient.WithTimeout(cfg.API.Timeout),
		httpclient.WithTokenStore(storage.NewTokens(a.Storage, logger)),
		httpclient.WithLogger(logger),
		httpclient.WithMetrics(a.Metrics),
		httpclient.WithUnauthorizedHandler(func() {
			logger.Info("session expired, continuing anonymously")
		}),
	)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Projects = api.NewProjects(a.Client)
	a.Blog = api.NewBlog(a.Client)
	a.Contact = api.NewContact(a.Client)
	a.Theme = theme.New(ctx, a.Storage, theme.WithLogger(logger))
	a.Cache = query.New(
		query.WithStaleTime(cfg.Cache.StaleTime),
		query.WithCacheTime(cfg.Cache.CacheTime),
		query.WithLogger(logger),
		query.WithMetrics(a.Metrics),
	)
	return a, nil
}

// Web builds the page server over the app's services.
func (a *App) Web() (*web.Server, error) {
	s, err := site.Load()
	if err != nil {
		return nil, err
	}
	return web.New(web.Deps{
		Projects: a.Projects,
		Blog:     a.Blog,
		Contact:  a.Contact,
		Cache:    a.Cache,
		Theme:    a.Theme,
		Site:     s,
		Metrics:  a.Metrics,
	},
		web.WithLogger(a.Logger),
		web.WithBreakpoint(a.Config.UI.MobileBreakpoint),
		web.WithCarouselInterval(a.Config.UI.CarouselInterval),
		web.WithMetricsToken(a.Config.Server.MetricsToken),
		web.WithMapsKey(a.Config.Integrations.MapsKey),
	)
}

// Serve runs the page server and the cache sweeper until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	srv, err := a.Web()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Cache.Run(ctx, a.Config.Cache.SweepInterval)
		return nil
	})
	g.Go(func() error {
		return srv.Run(ctx, net.JoinHostPort("", a.Config.Server.Port))
	})
	return g.Wait()
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
