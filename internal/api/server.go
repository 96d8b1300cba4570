package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/elevation.report/internal/db"
	"github.com/banshee-data/elevation.report/internal/ingest"
	"github.com/banshee-data/elevation.report/internal/transect"
	"github.com/banshee-data/elevation.report/internal/units"
	"github.com/banshee-data/elevation.report/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Config carries the request-independent server settings.
type Config struct {
	Units     string // output units for elevations and areas (m or ft)
	CSVPath   string // source CSV re-read on reload; empty means db-only
	EarlyYear int
	LateYear  int
}

type Server struct {
	db     *db.DB
	holder *SnapshotHolder
	cfg    Config
}

func NewServer(database *db.DB, holder *SnapshotHolder, cfg Config) *Server {
	if !units.IsValid(cfg.Units) {
		cfg.Units = units.Meters
	}
	return &Server{
		db:     database,
		holder: holder,
		cfg:    cfg,
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

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
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

// LoggingMiddleware logs method, path, query, status, and duration, and
// feeds the request counter.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		observeRequest(r.URL.Path, lrw.statusCode)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites", s.listSites)
	mux.HandleFunc("/profiles", s.showProfiles)
	mux.HandleFunc("/diff", s.showDifference)
	mux.HandleFunc("/integral", s.showIntegral)
	mux.HandleFunc("/summary", s.showSummary)
	mux.HandleFunc("/selection", s.handleSelection)
	mux.HandleFunc("/reload", s.reloadHandler)
	mux.HandleFunc("/config", s.showConfig)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode json response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// snapshot returns the published snapshot or writes a 503 when no build has
// completed yet.
func (s *Server) snapshot(w http.ResponseWriter) *transect.Snapshot {
	snap := s.holder.Snapshot()
	if snap == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "no survey data loaded")
	}
	return snap
}

// siteResult resolves the site query parameter against the snapshot, writing
// the appropriate error response when it cannot.
func (s *Server) siteResult(w http.ResponseWriter, r *http.Request) *transect.SiteResult {
	snap := s.snapshot(w)
	if snap == nil {
		return nil
	}
	site := r.URL.Query().Get("site")
	if site == "" {
		s.writeJSONError(w, http.StatusBadRequest, "missing 'site' parameter")
		return nil
	}
	result := snap.Result(site)
	if result == nil {
		s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown site %q", site))
		return nil
	}
	return result
}

func (s *Server) convertProfile(profile transect.Profile) transect.Profile {
	out := make(transect.Profile, len(profile))
	for i, rec := range profile {
		rec.Elevation = units.ConvertElevation(rec.Elevation, s.cfg.Units)
		out[i] = rec
	}
	return out
}

func (s *Server) convertSeries(series []transect.SeriesPoint, convert func(float64, string) float64) []transect.SeriesPoint {
	out := make([]transect.SeriesPoint, len(series))
	for i, p := range series {
		p.Value = convert(p.Value, s.cfg.Units)
		out[i] = p
	}
	return out
}

func (s *Server) listSites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"sites":      snap.Sites,
		"early_year": snap.EarlyYear,
		"late_year":  snap.LateYear,
	})
}

func (s *Server) showProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	result := s.siteResult(w, r)
	if result == nil {
		return
	}
	snap := s.holder.Snapshot()
	s.writeJSON(w, map[string]interface{}{
		"site":       result.Site,
		"early_year": snap.EarlyYear,
		"late_year":  snap.LateYear,
		"units":      s.cfg.Units,
		"early":      s.convertProfile(result.Early),
		"late":       s.convertProfile(result.Late),
		"matched":    result.Matched,
	})
}

func (s *Server) showDifference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	result := s.siteResult(w, r)
	if result == nil {
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"site":  result.Site,
		"units": s.cfg.Units,
		"diff":  s.convertSeries(result.Diff, units.ConvertElevation),
	})
}

func (s *Server) showIntegral(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	result := s.siteResult(w, r)
	if result == nil {
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"site":     result.Site,
		"units":    s.cfg.Units,
		"integral": s.convertSeries(result.Integral, units.ConvertArea),
	})
}

func (s *Server) showSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	summaries := make([]transect.SiteSummary, 0, len(snap.Sites))
	for _, site := range snap.Sites {
		summary := snap.Result(site).Summary
		summary.MeanDiff = units.ConvertElevation(summary.MeanDiff, s.cfg.Units)
		summary.StdDevDiff = units.ConvertElevation(summary.StdDevDiff, s.cfg.Units)
		summary.MinDiff = units.ConvertElevation(summary.MinDiff, s.cfg.Units)
		summary.MaxDiff = units.ConvertElevation(summary.MaxDiff, s.cfg.Units)
		summary.NetArea = units.ConvertArea(summary.NetArea, s.cfg.Units)
		summaries = append(summaries, summary)
	}
	s.writeJSON(w, map[string]interface{}{
		"units":     s.cfg.Units,
		"summaries": summaries,
	})
}

type selectionRequest struct {
	Site    string `json:"site"`
	Visible bool   `json:"visible"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.snapshot(w) == nil {
			return
		}
		s.writeJSON(w, map[string]interface{}{"selected": s.holder.SelectedSites()})
	case http.MethodPost:
		var req selectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid selection body: %v", err))
			return
		}
		if !s.holder.SetSelected(req.Site, req.Visible) {
			s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown site %q", req.Site))
			return
		}
		s.writeJSON(w, map[string]interface{}{"selected": s.holder.SelectedSites()})
	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// reloadHandler re-ingests the configured CSV (when set), replaces the stored
// record set, and rebuilds the snapshot from scratch. The previous snapshot
// is discarded wholesale; selection resets to all sites visible.
func (s *Server) reloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.db == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	skipped := 0
	if s.cfg.CSVPath != "" {
		result, err := ingest.ReadFile(s.cfg.CSVPath)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("failed to ingest %s: %v", s.cfg.CSVPath, err))
			return
		}
		if err := s.db.DeleteSurveyRecords(); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to clear records: %v", err))
			return
		}
		if err := s.db.InsertSurveyRecords(result.BatchID, result.Records); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store records: %v", err))
			return
		}
		if err := s.db.RecordImportBatch(&db.ImportBatch{
			BatchID:      result.BatchID,
			Source:       s.cfg.CSVPath,
			RecordCount:  len(result.Records),
			SkippedCount: result.Skipped,
		}); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to record batch: %v", err))
			return
		}
		skipped = result.Skipped
		observeIngest(len(result.Records))
	}

	records, err := s.db.LoadSurveyRecords()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load records: %v", err))
		return
	}

	snap := transect.BuildSnapshot(records, s.cfg.EarlyYear, s.cfg.LateYear)
	s.holder.Swap(snap)
	observeRebuild()

	s.writeJSON(w, map[string]interface{}{
		"records": len(records),
		"skipped": skipped,
		"sites":   len(snap.Sites),
	})
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"version":    version.Version,
		"units":      s.cfg.Units,
		"early_year": s.cfg.EarlyYear,
		"late_year":  s.cfg.LateYear,
	})
}
