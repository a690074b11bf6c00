package webchat

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/arielgp/salesfunnel-ai/internal/conversation"
	"github.com/arielgp/salesfunnel-ai/internal/funnel"
	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

// Handler runs funnel turns over a WebSocket so the chat widget gets each
// reply segment as its own frame, like a human typing successive messages.
type Handler struct {
	service  *conversation.Service
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type      string              `json:"type"` // "start", "message", "ping"
	Text      string              `json:"text,omitempty"`
	LeadState funnel.LeadState    `json:"leadState,omitempty"`
	History   []conversation.Turn `json:"history,omitempty"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string            `json:"type"` // "session", "message", "state", "pong", "error"
	Text      string            `json:"text,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	LeadState *funnel.LeadState `json:"leadState,omitempty"`
	Timestamp string            `json:"timestamp,omitempty"`
}

// NewHandler creates a webchat handler.
func NewHandler(service *conversation.Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("webchat: conversation service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The widget is embedded on customer sites.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades the connection and relays turns until the client
// disconnects.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	if err := conn.WriteJSON(OutboundMessage{Type: "session", SessionID: sessionID}); err != nil {
		return
	}

	for {
		var in InboundMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Error("websocket read failed", "session_id", sessionID, "error", err)
			}
			return
		}

		switch in.Type {
		case "ping":
			if err := conn.WriteJSON(OutboundMessage{Type: "pong"}); err != nil {
				return
			}
		case "start":
			resp, err := h.service.StartConversation(r.Context(), conversation.StartRequest{
				ConversationID: sessionID,
			})
			if !h.writeTurn(conn, resp, err) {
				return
			}
		case "message":
			resp, err := h.service.ProcessTurn(r.Context(), conversation.TurnRequest{
				ConversationID:      sessionID,
				Message:             in.Text,
				ConversationHistory: in.History,
				LeadState:           in.LeadState,
			})
			if !h.writeTurn(conn, resp, err) {
				return
			}
		default:
			if err := conn.WriteJSON(OutboundMessage{Type: "error", Text: "unknown message type"}); err != nil {
				return
			}
		}
	}
}

// writeTurn sends each reply segment as its own frame followed by the updated
// state. Returns false when the connection is gone.
func (h *Handler) writeTurn(conn *websocket.Conn, resp *conversation.TurnResponse, err error) bool {
	if err != nil {
		h.logger.Error("webchat turn failed", "error", err)
		apology := OutboundMessage{
			Type:      "message",
			Text:      h.service.Apology(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		return conn.WriteJSON(apology) == nil
	}

	ts := resp.Timestamp.Format(time.RFC3339)
	for _, segment := range resp.Reply {
		out := OutboundMessage{Type: "message", Text: segment, Timestamp: ts}
		if err := conn.WriteJSON(out); err != nil {
			return false
		}
	}
	state := resp.LeadState
	return conn.WriteJSON(OutboundMessage{Type: "state", LeadState: &state, Timestamp: ts}) == nil
}
