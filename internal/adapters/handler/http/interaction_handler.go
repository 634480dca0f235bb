package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// Dispatcher handles one inbound interaction and returns the replies to
// render, or an empty slice for deliberate silence.
type Dispatcher interface {
	Dispatch(ctx context.Context, in domain.Interaction) []domain.Reply
}

type InteractionHandler struct {
	dispatcher Dispatcher
}

func NewInteractionHandler(dispatcher Dispatcher) *InteractionHandler {
	return &InteractionHandler{
		dispatcher: dispatcher,
	}
}

type interactionRequest struct {
	VoterID     int64  `json:"voter_id"`
	DisplayName string `json:"display_name"`
	Payload     string `json:"payload"`
}

type interactionResponse struct {
	Replies []domain.Reply `json:"replies"`
}

func (h *InteractionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.VoterID == 0 {
		http.Error(w, "missing voter id", http.StatusBadRequest)
		return
	}

	replies := h.dispatcher.Dispatch(r.Context(), domain.Interaction{
		VoterID:     domain.VoterID(req.VoterID),
		DisplayName: req.DisplayName,
		Payload:     req.Payload,
	})
	if replies == nil {
		replies = []domain.Reply{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(interactionResponse{Replies: replies}); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
