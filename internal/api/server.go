// Package api exposes corner analysis over HTTP: submit a track, get the
// detected corners back, and browse previously persisted runs.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/corner.report/internal/ingest"
	"github.com/banshee-data/corner.report/internal/track"
	"github.com/banshee-data/corner.report/internal/trackdb"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// maxTrackBody caps the accepted upload size for /analyze.
const maxTrackBody = 32 << 20 // 32MB

// Server serves the corner analysis API.
type Server struct {
	store *trackdb.Store
	cfg   track.DetectorConfig
}

// NewServer creates an API server using cfg as the default detector tuning.
func NewServer(store *trackdb.Store, cfg track.DetectorConfig) *Server {
	return &Server{
		store: store,
		cfg:   cfg,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// ServeMux returns the API routes. Callers typically mount it under /api.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.analyzeTrack)
	mux.HandleFunc("/runs", s.listRuns)
	mux.HandleFunc("/runs/", s.showRun)
	mux.HandleFunc("/healthz", s.healthz)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// analyzeResponse is the payload returned by POST /analyze.
type analyzeResponse struct {
	Run     *trackdb.AnalysisRun `json:"run"`
	Corners []track.Corner       `json:"corners"`
	Summary track.RunSummary     `json:"summary"`
}

// analyzeTrack ingests a plain-text track body (one "x y z" triple per line),
// runs detection, persists the run, and returns run, corners, and summary.
// The window and threshold query parameters override the server's default
// tuning for this request only.
func (s *Server) analyzeTrack(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	cfg := s.cfg
	if v := r.URL.Query().Get("window"); v != "" {
		window, err := strconv.Atoi(v)
		if err != nil || window <= 0 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'window' parameter")
			return
		}
		cfg.Window = window
	}
	if v := r.URL.Query().Get("threshold"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold <= 0 || threshold > 180 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'threshold' parameter")
			return
		}
		cfg.ThresholdDeg = threshold
	}

	body := http.MaxBytesReader(w, r.Body, maxTrackBody)
	trk, err := ingest.ParseTrack(body)
	if err != nil {
		if errors.Is(err, track.ErrInvalidArgument) {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to read track: %v", err))
		return
	}

	angles, corners, err := track.NewDetector(cfg).Detect(trk)
	if err != nil {
		if errors.Is(err, track.ErrInvalidArgument) {
			s.writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Detection failed: %v", err))
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api"
	}
	params, _ := json.Marshal(cfg)
	run := &trackdb.AnalysisRun{
		Source:       source,
		Window:       cfg.Window,
		ThresholdDeg: cfg.ThresholdDeg,
		PointCount:   len(trk),
		ParamsJSON:   params,
	}
	if err := s.store.InsertRun(run, corners); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to persist run: %v", err))
		return
	}

	resp := analyzeResponse{
		Run:     run,
		Corners: corners,
		Summary: track.Summarize(trk, angles, corners),
	}
	if resp.Corners == nil {
		resp.Corners = []track.Corner{}
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write response")
		return
	}
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 50 // default value
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			s.writeJSONError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve runs: %v", err))
		return
	}
	if runs == nil {
		runs = []*trackdb.AnalysisRun{}
	}
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write runs")
		return
	}
}

// runDetail is the payload returned by GET /runs/{id}.
type runDetail struct {
	Run     *trackdb.AnalysisRun `json:"run"`
	Corners []track.Corner       `json:"corners"`
}

func (s *Server) showRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	runID := strings.TrimPrefix(r.URL.Path, "/runs/")
	if runID == "" || strings.Contains(runID, "/") {
		s.writeJSONError(w, http.StatusBadRequest, "Invalid run id")
		return
	}

	run, err := s.store.GetRun(runID)
	if errors.Is(err, sql.ErrNoRows) {
		s.writeJSONError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve run: %v", err))
		return
	}

	corners, err := s.store.CornersByRun(runID)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to retrieve corners: %v", err))
		return
	}
	if corners == nil {
		corners = []track.Corner{}
	}

	if err := json.NewEncoder(w).Encode(runDetail{Run: run, Corners: corners}); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to write run")
		return
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "ok")
}
