package http

import (
	"chatkeywords/internal/app/adapters/http/handlers"
	"chatkeywords/internal/app/adapters/http/middlewares"
	"chatkeywords/internal/app/adapters/session"
	"chatkeywords/internal/app/infrastructure/config"
	"chatkeywords/internal/app/ports"
	"chatkeywords/pkg/logger"
	"context"
	"errors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"time"
)

type Router struct {
	router      *gin.Engine
	handlers    *handlers.Handlers
	middlewares *middlewares.Middlewares

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager, scraper ports.ScraperPort, sess *session.Session) *Router {
	cfg := manager.Get()
	gin.SetMode(cfg.App.GinMode)

	r := &Router{
		router:      gin.New(),
		handlers:    handlers.New(log, manager, scraper, sess),
		middlewares: middlewares.New(log),
		log:         log,
		manager:     manager,
	}
	r.router.HandleMethodNotAllowed = true
	r.router.NoMethod(r.handlers.MethodNotAllowed)
	r.router.Use(gin.Recovery(), r.middlewares.Logger(), gzip.Gzip(gzip.DefaultCompression))

	admin := r.router.Group("/", r.middlewares.Auth(cfg.App.AuthToken))
	pprof.Register(admin)
	admin.GET("/metrics", gin.WrapH(promhttp.Handler()))
	admin.GET("/admin/config", r.handlers.GetConfig)
	admin.PUT("/admin/config", r.handlers.UpdateConfig)

	api := r.router.Group("/api")
	api.POST("/fetchChat", r.handlers.FetchChat)
	api.GET("/status", r.handlers.Status)

	s := api.Group("/session")
	s.GET("", r.handlers.GetSession)
	s.POST("/fetch", r.handlers.FetchSession)
	s.POST("/messages/:id/toggle", r.handlers.ToggleMessage)
	s.POST("/groups/toggle", r.handlers.ToggleGroup)
	s.POST("/remove-checked", r.handlers.RemoveChecked)
	s.POST("/reset", r.handlers.Reset)
	s.POST("/demo", r.handlers.LoadDemo)
	s.PUT("/filters", r.handlers.SetFilters)
	s.PUT("/exclude-words", r.handlers.SetExcludeWords)
	s.PUT("/sort-mode", r.handlers.SetSortMode)
	s.PUT("/group-limits", r.handlers.SetGroupLimit)

	return r
}

func (r *Router) Handler() http.Handler {
	return r.router
}

// Run serves until ctx is canceled and then shuts the server down gracefully.
func (r *Router) Run(ctx context.Context) error {
	srv := r.newServer(r.manager.Get().App.Listen, r.router)

	errCh := make(chan error, 1)
	go func() {
		r.log.Info("HTTP server started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	r.log.Info("HTTP server stopped")
	return nil
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
