package httpapi

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleConversationByIP(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	userAgent := r.Header.Get("User-Agent")

	view, err := s.sessions.GetByFingerprint(r.Context(), ip, userAgent)
	if err != nil {
		s.log.Error().Err(err).Msg("conversation lookup by fingerprint failed")
		s.metrics.StoreErrors.WithLabelValues("find").Inc()
		respondError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleConversationByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionId")

	messages, err := s.sessions.GetByID(r.Context(), id)
	if err != nil {
		s.log.Error().Err(err).Msg("conversation lookup by id failed")
		s.metrics.StoreErrors.WithLabelValues("find").Inc()
		respondError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.stats.Stats(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats aggregation failed")
		s.metrics.StoreErrors.WithLabelValues("count").Inc()
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// clientIP resolves the fingerprinting address for direct chat requests,
// preferring the first X-Forwarded-For hop when a proxy is in front.
func clientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
