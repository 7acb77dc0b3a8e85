package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"linktracker/internal/stats"
	"linktracker/internal/store"
	"linktracker/internal/tracking"
	"linktracker/internal/types"
)

const qrSize = 256

type Server struct {
	port      string
	baseURL   string
	store     *store.Store
	shortener *Shortener
	recorder  *tracking.Recorder
	resolver  *tracking.Resolver
}

func NewServer(port, baseURL string, s *store.Store, shortener *Shortener, recorder *tracking.Recorder, resolver *tracking.Resolver) *Server {
	return &Server{
		port:      port,
		baseURL:   baseURL,
		store:     s,
		shortener: shortener,
		recorder:  recorder,
		resolver:  resolver,
	}
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errChan := make(chan error, 1)
	go func() { errChan <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/links", s.handleCreateLink)
	mux.HandleFunc("GET /api/links", s.handleListLinks)
	mux.HandleFunc("GET /api/links/{id}/stats", s.handleLinkStats)
	mux.HandleFunc("GET /api/links/{id}/qr", s.handleLinkQR)
	mux.HandleFunc("POST /api/analytics", s.handleSubmitAnalytics)
	mux.HandleFunc("GET /api/analytics", s.handleListAnalytics)
	mux.HandleFunc("GET /api/analytics/{id}", s.handleGetAnalytics)
	mux.HandleFunc("DELETE /api/analytics/{id}", s.handleDeleteAnalytics)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /track/{code}", s.handleTrack)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return recovery(logRequest(mux))
}

type linkView struct {
	types.Link
	TrackingURL string `json:"tracking_url"`
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var req types.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	link, err := s.shortener.CreateLink(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			writeError(w, "URL and title are required", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidURL):
			writeError(w, "Invalid URL format", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCode):
			writeError(w, ErrInvalidCode.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrCodeExists):
			writeError(w, "Custom code already exists", http.StatusConflict)
		default:
			internalError(w, "Error creating link", err)
		}
		return
	}

	base := r.Header.Get("Origin")
	if base == "" {
		base = s.baseURL
	}
	slog.Info("link created", "link_id", link.ID, "code", link.TrackingCode)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"link":         link,
		"tracking_url": TrackingURL(base, link.TrackingCode),
	})
}

func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.store.Links(r.Context())
	if err != nil {
		internalError(w, "Error retrieving links", err)
		return
	}

	views := make([]linkView, 0, len(links))
	for _, l := range links {
		views = append(views, linkView{Link: l, TrackingURL: TrackingURL(s.baseURL, l.TrackingCode)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "links": views})
}

func (s *Server) handleLinkStats(w http.ResponseWriter, r *http.Request) {
	link, ok := s.lookupLink(w, r)
	if !ok {
		return
	}
	entries, err := s.store.AnalyticsByLinkID(r.Context(), link.ID)
	if err != nil {
		internalError(w, "Error retrieving link stats", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats.ForLink(link, entries)})
}

func (s *Server) handleLinkQR(w http.ResponseWriter, r *http.Request) {
	link, ok := s.lookupLink(w, r)
	if !ok {
		return
	}
	png, err := TrackingQR(TrackingURL(s.baseURL, link.TrackingCode), qrSize)
	if err != nil {
		internalError(w, "Error encoding QR code", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) lookupLink(w http.ResponseWriter, r *http.Request) (types.Link, bool) {
	link, err := s.store.LinkByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrLinkNotFound) {
		writeError(w, "Link not found", http.StatusNotFound)
		return types.Link{}, false
	}
	if err != nil {
		internalError(w, "Error retrieving link", err)
		return types.Link{}, false
	}
	return link, true
}

func (s *Server) handleSubmitAnalytics(w http.ResponseWriter, r *http.Request) {
	var sub types.AnalyticsSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, err := s.recorder.Record(r.Context(), sub, tracking.ClientFromRequest(r))
	if errors.Is(err, tracking.ErrLinkIDRequired) {
		writeError(w, "Link ID is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		internalError(w, "Error saving analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Analytics data saved successfully"})
}

func (s *Server) handleListAnalytics(w http.ResponseWriter, r *http.Request) {
	var (
		entries []types.AnalyticsEntry
		err     error
	)
	if linkID := r.URL.Query().Get("link_id"); linkID != "" {
		entries, err = s.store.AnalyticsByLinkID(r.Context(), linkID)
	} else {
		entries, err = s.store.Analytics(r.Context())
	}
	if err != nil {
		internalError(w, "Error retrieving analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analytics": entries})
}

func (s *Server) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.AnalyticsEntry(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrEntryNotFound) {
		writeError(w, "Analytics entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Error retrieving analytics entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entry": entry})
}

func (s *Server) handleDeleteAnalytics(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.DeleteAnalyticsEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		internalError(w, "Error deleting analytics entry", err)
		return
	}
	if !removed {
		writeError(w, "Analytics entry not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Analytics entry deleted successfully"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.store.Dashboard(r.Context())
	if err != nil {
		internalError(w, "Error retrieving dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": dash})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	visit := tracking.Visit{
		Code:     code,
		Client:   tracking.ClientFromRequest(r),
		Reported: reportedCoordinates(r),
	}

	out, err := s.resolver.Visit(r.Context(), visit)
	if errors.Is(err, store.ErrLinkNotFound) {
		writeError(w, "Link not found or expired", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, "Error resolving tracking code", err)
		return
	}

	slog.Debug("redirecting visitor", "code", code, "state", out.State.String(), "attempts", out.Attempts)
	http.Redirect(w, r, out.RedirectURL, http.StatusFound)
}

// reportedCoordinates reads lat/lon sent by the visitor's browser. Both
// must be present, finite and in range.
func reportedCoordinates(r *http.Request) *types.Coordinates {
	q := r.URL.Query()
	lat, ok := parseCoordinate(q.Get("lat"), 90)
	if !ok {
		return nil
	}
	lon, ok := parseCoordinate(q.Get("lon"), 180)
	if !ok {
		return nil
	}
	return &types.Coordinates{Latitude: lat, Longitude: lon}
}

func parseCoordinate(raw string, bound float64) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > bound {
		return 0, false
	}
	return v, true
}
