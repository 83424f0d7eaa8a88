package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/UNOA-Project/UNOA-Back/internal/chatbot"
	"github.com/UNOA-Project/UNOA-Back/internal/conversation"
	"github.com/UNOA-Project/UNOA-Back/internal/fingerprint"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	SessionKey string `json:"sessionKey"`
	Reply      string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	key := fingerprint.Derive(clientIP(r), r.Header.Get("User-Agent"))
	turn, status, msg := s.runChatTurn(r, key, req.Message)
	if msg != "" {
		respondError(w, status, msg)
		return
	}
	respondJSON(w, http.StatusOK, chatResponse{SessionKey: turn.SessionKey, Reply: turn.Reply})
}

// runChatTurn executes one chat exchange and maps failures to a status code
// and caller-safe message. An empty message return means success.
func (s *Server) runChatTurn(r *http.Request, key, text string) (chatbot.Turn, int, string) {
	start := time.Now()
	turn, err := s.chat.Respond(r.Context(), key, text)
	switch {
	case errors.Is(err, chatbot.ErrInvalidRequest):
		return chatbot.Turn{}, http.StatusBadRequest, "message is required"
	case errors.Is(err, conversation.ErrUnavailable):
		s.log.Error().Err(err).Msg("chat turn storage failed")
		s.metrics.StoreErrors.WithLabelValues("append").Inc()
		return chatbot.Turn{}, http.StatusInternalServerError, "failed to process message"
	case err != nil:
		s.log.Error().Err(err).Msg("chat turn generation failed")
		s.metrics.ObserveGeneration("error", time.Since(start))
		return chatbot.Turn{}, http.StatusInternalServerError, "failed to generate reply"
	}

	s.metrics.ObserveGeneration("ok", time.Since(start))
	s.metrics.ConversationAppends.WithLabelValues(string(turn.Outcome)).Inc()
	return turn, 0, ""
}

func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	key := fingerprint.Derive(clientIP(r), r.Header.Get("User-Agent"))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		s.metrics.WSMessages.WithLabelValues("inbound").Inc()

		turn, _, msg := s.runChatTurn(r, key, req.Message)
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if msg != "" {
			if err := conn.WriteJSON(errorResponse{Error: msg}); err != nil {
				return
			}
			s.metrics.WSMessages.WithLabelValues("outbound").Inc()
			continue
		}
		if err := conn.WriteJSON(chatResponse{SessionKey: turn.SessionKey, Reply: turn.Reply}); err != nil {
			return
		}
		s.metrics.WSMessages.WithLabelValues("outbound").Inc()
	}
}
