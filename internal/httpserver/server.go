package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/radiusdt/vector-track/internal/config"
	"github.com/radiusdt/vector-track/internal/ingest"
	"github.com/radiusdt/vector-track/internal/metrics"
	"github.com/radiusdt/vector-track/internal/storage"
	"github.com/radiusdt/vector-track/internal/trackerr"
	"go.uber.org/zap"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	Store   storage.EventStore
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Server wraps HTTP handlers and the ingestion service.
type Server struct {
	ingestService *ingest.Service
	store         storage.EventStore
	logger        *zap.Logger
	config        *config.Config
}

// NewServer constructs a new http.Handler with all routes registered.
func NewServer(deps *Dependencies) http.Handler {
	s := &Server{
		ingestService: ingest.NewService(deps.Store, deps.Logger, deps.Metrics),
		store:         deps.Store,
		logger:        deps.Logger,
		config:        deps.Config,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Event ingestion
	mux.HandleFunc("/track", s.handleTrack)

	// Prometheus scrape endpoint
	if deps.Config.Metrics.Enabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	// Everything else is not found
	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		s.errorResponse(w, "event store unreachable", http.StatusServiceUnavailable)
		return
	}
	s.jsonResponse(w, map[string]string{"status": "ok"})
}

// ---- Event Ingestion ----

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	eventtype := q.Get("eventtype")
	ids := q.Get("ids")
	if eventtype == "" || ids == "" {
		s.errorResponse(w, "eventtype and ids are required", http.StatusBadRequest)
		return
	}

	res, err := s.ingestService.Ingest(r.Context(), eventtype, ids)
	if err != nil {
		if trackerr.IsValidation(err) {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("failed to ingest events", zap.Error(err))
		s.errorResponse(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.jsonResponse(w, res)
}

// ---- Fallback ----

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, "not found", http.StatusNotFound)
}

// ---- Response Helpers ----

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
