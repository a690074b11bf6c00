package conversation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arielgp/salesfunnel-ai/internal/funnel"
	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

// Handler wires HTTP requests to the conversation service.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a conversation handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("conversation: service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start handles POST /conversations/start.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode start request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.StartConversation(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			h.writeApology(w, req.ConversationID, funnel.NewLeadState())
			return
		}
		h.logger.Error("failed to start conversation", "error", err)
		http.Error(w, "Failed to start conversation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, resp)
}

// Turn handles POST /conversations/turn.
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode turn request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ProcessTurn(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, funnel.ErrUnknownStage):
			h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": "unknown funnel stage",
			})
		case errors.Is(err, ErrUpstream):
			// The visitor gets the scripted apology and keeps the state they
			// sent, so the turn can simply be retried.
			h.writeApology(w, req.ConversationID, req.LeadState)
		default:
			h.logger.Error("failed to process turn", "error", err)
			http.Error(w, "Failed to process turn", http.StatusInternalServerError)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeApology(w http.ResponseWriter, conversationID string, state funnel.LeadState) {
	h.writeJSON(w, http.StatusBadGateway, &TurnResponse{
		ConversationID: conversationID,
		Reply:          Reply{h.service.Apology()},
		LeadState:      state,
		Timestamp:      time.Now().UTC(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
