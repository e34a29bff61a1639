// Package viewer serves a rendered figure over HTTP so it can be inspected
// interactively in a browser. Start blocks until its context is cancelled.
package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/banshee-data/rovplot/internal/figure"
	"github.com/banshee-data/rovplot/internal/render"
	"github.com/banshee-data/rovplot/internal/version"
)

// Config contains configuration options for the viewer.
type Config struct {
	Address string
	Figure  *figure.Figure
	Page    render.PageOptions
	View    render.View
	// Source is the capture path, reported by /health.
	Source string
}

// Server displays one figure.
type Server struct {
	address string
	fig     *figure.Figure
	page    render.PageOptions
	view    render.View
	source  string
	server  *http.Server
}

// NewServer creates a viewer for cfg.Figure.
func NewServer(cfg Config) *Server {
	s := &Server{
		address: cfg.Address,
		fig:     cfg.Figure,
		page:    cfg.Page,
		view:    cfg.View,
		source:  cfg.Source,
	}
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the viewer routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/figure.png", s.handlePNG)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/", s.handleFigure)
	return mux
}

// Start listens on the configured address and serves until ctx is done,
// then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Figure available at http://%s/", ln.Addr())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("viewer server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("shutting down viewer...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("viewer shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			log.Printf("viewer force close error: %v", err)
		}
	}
	return nil
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, s.fig, s.page); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, s.fig, s.view); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render image: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":  s.fig.Title,
		"rows":   s.fig.Rows,
		"groups": figure.Summarize(s.fig),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"source":  s.source,
		"version": version.String(),
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode json response: %v", err)
	}
}
