// Package api exposes the assessment pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ethicswatch/ethicswatch/internal/analyze"
	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/watchdog"
)

// WatchdogRunner runs one misinformation assessment.
type WatchdogRunner interface {
	Run(ctx context.Context, text string, opts watchdog.Options) (*model.WatchReport, error)
}

// UseCaseAnalyzer runs one use-case risk analysis.
type UseCaseAnalyzer interface {
	Analyze(ctx context.Context, useCase string, opts analyze.Options) (string, error)
}

// Server serves the HTTP API. Handler details stay behind the mux; the
// caller owns listening and shutdown.
type Server struct {
	watchdog WatchdogRunner
	analyzer UseCaseAnalyzer
	log      *logrus.Logger
	mux      *http.ServeMux
}

// NewServer creates the API server
func NewServer(w WatchdogRunner, a UseCaseAnalyzer, log *logrus.Logger) *Server {
	s := &Server{
		watchdog: w,
		analyzer: a,
		log:      log,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/watchdog", s.handleWatchdog)
	s.mux.HandleFunc("/analyze", s.handleAnalyze)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the server until the context is cancelled, then
// drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("api.listen")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type watchdogRequest struct {
	Text  string `json:"text"`
	K     int    `json:"k,omitempty"`
	Model string `json:"model,omitempty"`
}

func (s *Server) handleWatchdog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req watchdogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	report, err := s.watchdog.Run(r.Context(), req.Text, watchdog.Options{
		TopK:  req.K,
		Model: req.Model,
	})
	if err != nil {
		s.log.WithError(err).Error("api.watchdog.failed")
		writeError(w, http.StatusBadGateway, "assessment failed, see logs")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type analyzeRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
	Model string `json:"model,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Query, analyze.Options{
		TopK:  req.K,
		Model: req.Model,
	})
	if err != nil {
		s.log.WithError(err).Error("api.analyze.failed")
		writeError(w, http.StatusBadGateway, "analysis failed, see logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
