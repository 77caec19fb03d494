// Package server exposes a running layout over HTTP: rendered snapshots,
// JSON state, diagnostics and a drag endpoint that pins nodes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/TFMV/tetherlayout/models"
	"github.com/TFMV/tetherlayout/physics"
	"github.com/TFMV/tetherlayout/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Config for the server
type Config struct {
	Port      int
	TPS       int // simulation ticks per second
	DebugMode bool
}

// Server ticks a driver in the background and serves its state
type Server struct {
	config *Config
	driver *physics.Driver
	mux    *http.ServeMux
}

// DragRequest is the body of POST /api/drag
type DragRequest struct {
	Node        int     `json:"node"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	HasPosition bool    `json:"has_position"`
}

// New creates a server for driver
func New(config *Config, driver *physics.Driver) *Server {
	s := &Server{config: config, driver: driver, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", handleIndex())
	s.mux.HandleFunc("/visualize", handleVisualize(driver))
	s.mux.HandleFunc("/api/graph", handleAPIGraph(driver))
	s.mux.HandleFunc("/api/stats", handleAPIStats(driver))
	s.mux.HandleFunc("/api/drag", handleDrag(driver))
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start ticks the simulation and serves HTTP until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go s.runTicks(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %d at %d ticks/s...", s.config.Port, s.config.TPS)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) runTicks(ctx context.Context) {
	tps := s.config.TPS
	if tps <= 0 {
		tps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.driver.Tick()
			if s.config.DebugMode {
				if st := s.driver.Stats(); st.Ticks%uint64(tps) == 0 {
					log.Printf("tick %d: %d contacts, %d impulses", st.Ticks, st.Contacts, st.Impulses)
				}
			}
		}
	}
}

// handleIndex renders a page that polls the SVG snapshot
func handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>tetherlayout</title></head>
<body style="margin:0;background:#f8f8f8">
<img id="layout" src="/visualize?format=svg" alt="layout">
<script>
setInterval(function () {
  document.getElementById("layout").src = "/visualize?format=svg&t=" + Date.now();
}, 250);
</script>
</body>
</html>
`)
	}
}

// handleVisualize renders the current snapshot
func handleVisualize(driver *physics.Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "svg"
		}

		options := render.NewDefaultOptions(format)
		if v := r.URL.Query().Get("width"); v != "" {
			if width, err := strconv.Atoi(v); err == nil && width > 0 {
				options.Width = float64(width)
			}
		}
		if v := r.URL.Query().Get("height"); v != "" {
			if height, err := strconv.Atoi(v); err == nil && height > 0 {
				options.Height = float64(height)
			}
		}

		if _, err := render.GetRenderer(format); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		output, err := render.Generate(driver, options)
		if err != nil {
			http.Error(w, "Error generating visualization: "+err.Error(), http.StatusInternalServerError)
			return
		}

		switch format {
		case "svg":
			w.Header().Set("Content-Type", "image/svg+xml")
		case "json":
			w.Header().Set("Content-Type", "application/json")
		default:
			w.Header().Set("Content-Type", "text/plain")
		}
		w.Write(output)
	}
}

// handleAPIGraph returns the current snapshot as JSON
func handleAPIGraph(driver *physics.Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, render.ToJSON(driver.Snapshot(), nil))
	}
}

// handleAPIStats returns tick counters and layout diagnostics
func handleAPIStats(driver *physics.Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := driver.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"ticks":       st.Ticks,
			"phases":      st.Phases,
			"contacts":    st.Contacts,
			"impulses":    st.Impulses,
			"diagnostics": physics.Diagnose(driver.Snapshot()),
		})
	}
}

// handleDrag pins a node at the posted position
func handleDrag(driver *physics.Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req DragRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Error parsing request: "+err.Error(), http.StatusBadRequest)
			return
		}
		h := models.Handle(req.Node)
		if !driver.Has(h) {
			http.Error(w, fmt.Sprintf("node %d not found", req.Node), http.StatusNotFound)
			return
		}

		driver.Override(h, r2.Vec{X: req.X, Y: req.Y}, req.HasPosition)
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
