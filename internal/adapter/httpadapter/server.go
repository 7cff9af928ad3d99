package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/couchcryptid/weather-lookup-service/internal/ui"
)

// WeatherService runs lookups for the HTTP handlers.
type WeatherService interface {
	LookupWeather(ctx context.Context, place string) (domain.WeatherReport, error)
	Submit(ctx context.Context, place string, surface ui.Surface, errs ui.ErrorSurface) bool
}

// Server exposes the weather widget, the JSON lookup API, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	service    WeatherService
	page       *ui.Page
	banner     *ui.Banner
	logger     *slog.Logger
}

// NewServer creates an HTTP server. page and banner are the widget's display
// surfaces; every form submission renders into them.
func NewServer(addr string, svc WeatherService, page *ui.Page, banner *ui.Banner, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: svc,
		page:    page,
		banner:  banner,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /lookup", s.handleSubmit)
	mux.HandleFunc("GET /api/weather", s.handleAPILookup)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.WriteHTML(w, s.banner); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// handleSubmit is the form binding: it trims the city field, ignores empty
// input, and redirects back to the page once the lookup has been presented.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.PostFormValue("city"))
	if city != "" {
		s.banner.Clear()
		// Lookups are not cancellable once started.
		s.service.Submit(context.WithoutCancel(r.Context()), city, s.page, s.banner)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPILookup(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "city is required"})
		return
	}

	report, err := s.service.LookupWeather(context.WithoutCancel(r.Context()), city)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": domain.Message(err)})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPlaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidResponse), errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
