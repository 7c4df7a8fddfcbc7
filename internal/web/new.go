package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/config"
	"github.com/nguyentantai21042004/cutsheet/internal/history"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"github.com/nguyentantai21042004/cutsheet/internal/processor"
	"github.com/nguyentantai21042004/cutsheet/internal/templates"
)

// Server exposes the processor over HTTP.
type Server struct {
	cfg       *config.Config
	proc      processor.Processor
	templates templates.Provider
	analyzer  analyzer.Analyzer
	history   history.Store
	logger    logger.Logger
	limiter   *clientLimiter
	engine    *gin.Engine
}

// New builds the router. store may be nil when history is disabled.
func New(cfg *config.Config, proc processor.Processor, tpl templates.Provider, an analyzer.Analyzer, store history.Store, log logger.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		proc:      proc,
		templates: tpl,
		analyzer:  an,
		history:   store,
		logger:    log,
		limiter:   newClientLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		engine:    gin.New(),
	}
	s.setupRouter()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info(ctx, "HTTP server stopped")
	return nil
}
