package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/UNOA-Project/UNOA-Back/internal/chatbot"
	"github.com/UNOA-Project/UNOA-Back/internal/plans"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	list, err := s.catalog.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("plan catalog lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to load plans")
		return
	}
	if list == nil {
		list = []plans.Plan{}
	}
	respondJSON(w, http.StatusOK, list)
}

type compareRequest struct {
	Plans []plans.Plan `json:"plans"`
}

type compareResponse struct {
	Summary string `json:"summary"`
}

func (s *Server) handleComparePlans(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "exactly two plans are required")
		return
	}

	start := time.Now()
	summary, err := s.comparer.Compare(r.Context(), req.Plans)
	switch {
	case errors.Is(err, chatbot.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, "exactly two plans are required")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("plan comparison failed")
		s.metrics.ObserveGeneration("error", time.Since(start))
		respondError(w, http.StatusInternalServerError, "failed to generate comparison")
		return
	}

	s.metrics.ObserveGeneration("ok", time.Since(start))
	respondJSON(w, http.StatusOK, compareResponse{Summary: summary})
}
