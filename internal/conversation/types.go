package conversation

import (
	"encoding/json"
	"time"

	"github.com/arielgp/salesfunnel-ai/internal/funnel"
)

// Chat roles mirror the OpenAI wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single prompt message sent to the language model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one entry in the client-held conversation history.
type Turn struct {
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// TurnRequest carries everything the service needs to run one turn. The
// client holds the authoritative state and echoes it back on every request.
type TurnRequest struct {
	ConversationID      string           `json:"conversationId,omitempty"`
	Message             string           `json:"message"`
	ConversationHistory []Turn           `json:"conversationHistory"`
	LeadState           funnel.LeadState `json:"leadState"`
}

// StartRequest opens a conversation with a fresh greeting.
type StartRequest struct {
	ConversationID string `json:"conversationId,omitempty"`
	LeadID         string `json:"leadId,omitempty"`
}

// Reply holds the assistant's answer as one or more message segments.
// A single segment marshals as a bare JSON string so simple clients can
// treat the reply as text.
type Reply []string

// MarshalJSON collapses single-segment replies to a plain string.
func (r Reply) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}

// UnmarshalJSON accepts both the bare-string and array forms.
func (r *Reply) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Reply{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = Reply(many)
	return nil
}

// TurnResponse returns the assistant reply and the updated lead state the
// client must persist for its next request.
type TurnResponse struct {
	ConversationID string           `json:"conversationId,omitempty"`
	Reply          Reply            `json:"reply"`
	LeadState      funnel.LeadState `json:"leadState"`
	Timestamp      time.Time        `json:"timestamp"`
}
