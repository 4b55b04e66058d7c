// Package server exposes the planning engine over HTTP.
//
// The API is a stateless shell around the deterministic planner:
//
//	POST /api/plan   scan JSON body -> conversion plan JSON
//	GET  /healthz    liveness probe
//
// Plans are cached by content hash of the request body plus the planning
// options, so repeated posts of the same scan are served from cache.
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mkessler/portplan/internal/server/httperr"
	"github.com/mkessler/portplan/pkg/cache"
	"github.com/mkessler/portplan/pkg/config"
	"github.com/mkessler/portplan/pkg/plan"
	"github.com/mkessler/portplan/pkg/scan"
)

// maxScanBytes caps request bodies; scans are bounded inventories, not
// bulk uploads.
const maxScanBytes = 64 << 20

// Server handles planning requests.
type Server struct {
	cfg    config.Config
	cache  cache.Cache
	logger *log.Logger
}

// New builds the HTTP handler tree for the planning API.
func New(cfg config.Config, c cache.Cache, logger *log.Logger) http.Handler {
	s := &Server{cfg: cfg, cache: c, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/plan", s.handlePlan)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handlePlan decodes a scan from the request body, builds the plan, and
// returns it. Malformed scans map to 400 with the validation message;
// everything else the planner normalizes into the plan itself.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScanBytes))
	if err != nil {
		httperr.Write(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	key := cache.PlanKey(raw, s.cfg.Plan.MaxUnitSize, s.cfg.Plan.Parallelism)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		writeJSONBytes(w, data)
		return
	}

	var sc scan.Scan
	if err := json.Unmarshal(raw, &sc); err != nil {
		httperr.Write(w, http.StatusBadRequest, "invalid scan JSON: "+err.Error())
		return
	}

	planner := plan.NewPlanner(plan.Options{
		MaxUnitSize: s.cfg.Plan.MaxUnitSize,
		Parallelism: s.cfg.Plan.Parallelism,
		Logger:      s.logger,
	})
	result, err := planner.Build(&sc)
	if err != nil {
		httperr.Write(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := plan.MarshalPlan(result.Plan)
	if err != nil {
		httperr.Write(w, http.StatusInternalServerError, "encode plan: "+err.Error())
		return
	}
	if err := s.cache.Set(r.Context(), key, data, 0); err != nil {
		s.logger.Debug("cache write failed", "err", err)
	}

	writeJSONBytes(w, data)
}

func writeJSONBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten())
	})
}
