// Package api implements the administrative HTTP endpoint of the
// logging subsystem: a PUT on /logger configures the sink, threshold
// and display toggles, and /metrics exposes the Prometheus counters.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vhostd/hostlog/audit"
	"github.com/vhostd/hostlog/config"
	"github.com/vhostd/hostlog/core"
	"github.com/vhostd/hostlog/logger"
	"github.com/vhostd/hostlog/metrics"
)

// loggerRequest is the wire form of the logger configuration call.
type loggerRequest struct {
	LogPath       string `json:"log_path"`
	Level         string `json:"level"`
	ShowLevel     *bool  `json:"show_level"`
	ShowLogOrigin *bool  `json:"show_log_origin"`
}

type faultResponse struct {
	FaultMessage string `json:"fault_message"`
}

type server struct {
	log *logger.Logger
}

// NewHandler returns the administrative API handler. Every request to
// the /logger resource is audit-logged through l; /metrics is not
// audited since scrapes are periodic and would flood the sink.
func NewHandler(l *logger.Logger) http.Handler {
	s := &server{log: l}
	mux := http.NewServeMux()
	mux.Handle("/logger", audit.Middleware(l.Named("fc_api"), http.HandlerFunc(s.handleLogger)))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *server) handleLogger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		s.fault(w, r, http.StatusMethodNotAllowed, "the logger resource only supports Put requests")
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	req := loggerRequest{Level: "Info"}
	if err := dec.Decode(&req); err != nil {
		s.fault(w, r, http.StatusBadRequest, "invalid logger configuration: "+err.Error())
		return
	}

	threshold, err := core.ParseSeverity(req.Level)
	if err != nil {
		s.fault(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cfg := logger.Config{
		LogPath:    req.LogPath,
		Threshold:  threshold,
		ShowLevel:  req.ShowLevel == nil || *req.ShowLevel,
		ShowOrigin: req.ShowLogOrigin == nil || *req.ShowLogOrigin,
	}
	if err := s.log.Configure(cfg); err != nil {
		// The fault message keeps the OS error description; callers
		// match on it.
		s.fault(w, r, http.StatusBadRequest, err.Error())
		return
	}

	metrics.APIRequests.WithLabelValues(r.Method, strconv.Itoa(http.StatusNoContent)).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) fault(w http.ResponseWriter, r *http.Request, status int, msg string) {
	metrics.APIRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(faultResponse{FaultMessage: msg})
}

// Server runs the administrative endpoint.
type Server struct {
	log  *logger.Logger
	http *http.Server
}

// NewServer builds a Server listening on the configured address.
func NewServer(cfg config.APIConfig, l *logger.Logger) *Server {
	return &Server{
		log: l,
		http: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewHandler(l),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// ListenAndServe blocks serving requests until Shutdown or a listener
// error.
func (s *Server) ListenAndServe() error {
	s.log.Infof("API server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
