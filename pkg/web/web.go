// Package web serves printerm's JSON API: template discovery, preview
// and validation, printing, history, and settings.
//
// Configuration is re-read per request so settings changes take effect
// without a restart. The physical printer sits behind a small factory
// interface, which also keeps the handlers testable without a device.
package web

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/printerm/printerm/pkg/config"
	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/history"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/paths"
	"github.com/printerm/printerm/pkg/printer"
	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/templates"
)

// DocumentPrinter sends a rendered document to the device.
type DocumentPrinter interface {
	Print(ctx context.Context, runs []render.Run) error
}

// PrinterFactory builds a DocumentPrinter from the current
// configuration, once per print request.
type PrinterFactory func(cfg *config.Config) (DocumentPrinter, error)

// Options configures a Server.
type Options struct {
	Templates *templates.Store
	Renderer  *render.Renderer

	// History is optional; without it print jobs are not recorded.
	History *history.Store

	// ConfigPath overrides where settings are read from and written
	// to. Empty means the default user config file.
	ConfigPath string

	// NewPrinter overrides how the device connection is built.
	NewPrinter PrinterFactory
}

// Server handles the JSON API.
type Server struct {
	templates  *templates.Store
	renderer   *render.Renderer
	history    *history.Store
	configPath string
	newPrinter PrinterFactory
}

// NewServer builds a Server from opts.
func NewServer(opts Options) (*Server, error) {
	if opts.Templates == nil {
		return nil, errors.New(errors.ErrInternal, "Web server needs a template store")
	}
	if opts.Renderer == nil {
		return nil, errors.New(errors.ErrInternal, "Web server needs a renderer")
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		p, err := paths.New()
		if err != nil {
			return nil, err
		}
		configPath = p.ConfigFilePath()
	}

	newPrinter := opts.NewPrinter
	if newPrinter == nil {
		newPrinter = func(cfg *config.Config) (DocumentPrinter, error) {
			return printer.New(cfg)
		}
	}

	return &Server{
		templates:  opts.Templates,
		renderer:   opts.Renderer,
		history:    opts.History,
		configPath: configPath,
		newPrinter: newPrinter,
	}, nil
}

// Handler returns the API routes as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("GET /api/templates/{name}", s.handleGetTemplate)
	mux.HandleFunc("POST /api/preview/{name}", s.handlePreview)
	mux.HandleFunc("POST /api/validate/{name}", s.handleValidate)
	mux.HandleFunc("POST /api/print/{name}", s.handlePrint)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handlePutSettings)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s.withRequestLog(mux)
}

// Run serves the API on addr until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish.
func (s *Server) Run(ctx context.Context, addr string) error {
	logger := logging.GetLogger("web")

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Web interface listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, errors.ErrInternal, "Web server on %s failed", addr)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "Web server shutdown failed")
	}
	logger.Info().Msg("Web interface stopped")
	return nil
}

// config loads the current settings for one request.
func (s *Server) config() (*config.Config, error) {
	return config.LoadFromPath(s.configPath)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	logger := logging.GetLogger("web")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("Request handled")
	})
}
