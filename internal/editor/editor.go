// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package editor serves the local recipe form: a category and recipe
// selector, an edit form pre-filled from the selected record, and a submit
// endpoint that writes the record back into the content tree.
//
// The editor has no authentication and must only listen on a loopback
// address.
package editor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdiddy/cookbook/internal/logger"
	"github.com/pdiddy/cookbook/pkg/types"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:5000"

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	maxUploadBytes  = 32 << 20
	shutdownTimeout = 5 * time.Second
)

// Server is the web editor.
type Server struct {
	cfg    types.EditorConfig
	log    *logger.Logger
	engine *gin.Engine
}

// New builds a Server with its routes registered.
func New(cfg types.EditorConfig, log *logger.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	s := &Server{cfg: cfg, log: log}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	engine.MaxMultipartMemory = maxUploadBytes
	engine.SetHTMLTemplate(newFormTemplate())

	engine.GET("/", s.handleForm)
	engine.POST("/submit", s.handleSubmit)

	s.engine = engine
	return s
}

// Handler returns the HTTP handler serving the editor.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("editor listening", "addr", "http://"+s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving editor: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down editor: %w", err)
	}
	return nil
}

// requestLogger tags each request with a uuid and logs it once the handler
// chain completes.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()
		log.Request(id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
