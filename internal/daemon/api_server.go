package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salience/internal/api"
	"salience/internal/config"
	"salience/internal/digest"
	"salience/internal/logging"
	"salience/internal/summarize"
	"salience/internal/textutil"
)

type apiServer struct {
	bind     string
	token    string
	maxBytes int64
	version  string
	logger   *slog.Logger
	svc      *api.SummaryService

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, svc *api.SummaryService, version string, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("api server requires config and summary service")
	}
	bind := strings.TrimSpace(cfg.API.Bind)
	if bind == "" {
		return nil, errors.New("api bind address is empty")
	}

	srv := &apiServer{
		bind:     bind,
		token:    cfg.API.Token,
		maxBytes: cfg.Fetch.MaxBytes,
		version:  version,
		logger:   logger,
		svc:      svc,
	}
	srv.server = &http.Server{
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/summarize", authMiddleware(s.token, s.handleSummarize))
	mux.HandleFunc("POST /api/explain", authMiddleware(s.token, s.handleExplain))
	mux.HandleFunc("GET /api/digests", authMiddleware(s.token, s.handleDigests))
	mux.HandleFunc("DELETE /api/digests", authMiddleware(s.token, s.handleClearDigests))
	mux.HandleFunc("GET /api/digests/{id}", authMiddleware(s.token, s.handleDigest))
	mux.HandleFunc("DELETE /api/digests/{id}", authMiddleware(s.token, s.handleRemoveDigest))
	return requestIDMiddleware(s.log(), mux)
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.svc.DigestCount(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Version: s.version,
		Cache:   s.svc.CacheEnabled(),
		Digests: count,
	})
}

func (s *apiServer) handleSummarize(w http.ResponseWriter, r *http.Request) {
	out, ok := s.summarize(w, r, false)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.SummaryResponseFrom(out))
}

func (s *apiServer) handleExplain(w http.ResponseWriter, r *http.Request) {
	out, ok := s.summarize(w, r, true)
	if !ok {
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.ExplainResponseFrom(out))
}

func (s *apiServer) summarize(w http.ResponseWriter, r *http.Request, detail bool) (*api.Summary, bool) {
	var req api.SummarizeRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if strings.TrimSpace(req.Origin) == "" {
		req.Origin = "api"
	}

	out, err := s.svc.Summarize(r.Context(), req, detail)
	switch {
	case err == nil:
		return out, true
	case errors.Is(err, summarize.ErrInvalidOptions), errors.Is(err, textutil.ErrMalformedInput):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.log()), "summarize failed", "summarize_failed", logging.Error(err))
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	}
	return nil, false
}

func (s *apiServer) handleDigests(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	items, total, err := s.svc.Digests(r.Context(), limit)
	if err != nil {
		s.writeDigestError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.DigestListResponse{Items: items, Total: total})
}

func (s *apiServer) handleDigest(w http.ResponseWriter, r *http.Request) {
	item, err := s.svc.Digest(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDigestError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.DigestResponse{Item: *item})
}

func (s *apiServer) handleRemoveDigest(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.RemoveDigest(r.Context(), r.PathValue("id")); err != nil {
		s.writeDigestError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusNoContent, nil)
}

func (s *apiServer) handleClearDigests(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.ClearDigests(r.Context())
	if err != nil {
		s.writeDigestError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, api.ClearResponse{Removed: removed})
}

func (s *apiServer) writeDigestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, digest.ErrNotFound), errors.Is(err, api.ErrCacheDisabled):
		s.writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, digest.ErrAmbiguousID):
		s.writeError(w, r, http.StatusConflict, err.Error())
	default:
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if payload != nil {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WithContext(r.Context(), s.log()).Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	return logging.NewComponentLogger(s.logger, "api-server")
}
