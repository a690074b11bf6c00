package conversation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arielgp/salesfunnel-ai/internal/funnel"
	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

func newTestHandler(t *testing.T, llm LLMClient) *Handler {
	t.Helper()
	return NewHandler(newTestService(t, llm), logging.Default())
}

func postJSON(t *testing.T, handler http.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandlerTurn_SingleSegmentMarshalsAsString(t *testing.T) {
	handler := newTestHandler(t, &fakeLLM{reply: "Hey there! Who am I chatting with?"})

	rec := postJSON(t, handler.Turn, TurnRequest{Message: "hi"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !bytes.HasPrefix(raw["reply"], []byte(`"`)) {
		t.Errorf("single-segment reply should be a bare string, got %s", raw["reply"])
	}
}

func TestHandlerTurn_MultiSegmentMarshalsAsArray(t *testing.T) {
	long := "Totally get that, dental is a crowded market. Most clinics we work with were losing leads overnight before automating follow-up. Fancy a quick call to see the numbers?"
	handler := newTestHandler(t, &fakeLLM{reply: long})

	state := funnel.NewLeadState()
	state.Stage = funnel.StageIndustry
	rec := postJSON(t, handler.Turn, TurnRequest{Message: "dental", LeadState: state})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !bytes.HasPrefix(raw["reply"], []byte(`[`)) {
		t.Errorf("multi-segment reply should be an array, got %s", raw["reply"])
	}
}

func TestHandlerTurn_UnknownStageIs422(t *testing.T) {
	handler := newTestHandler(t, &fakeLLM{reply: "unused"})

	rec := postJSON(t, handler.Turn, TurnRequest{
		Message:   "hi",
		LeadState: funnel.LeadState{Stage: funnel.Stage("archived")},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestHandlerTurn_UpstreamFailureReturnsApologyAndState(t *testing.T) {
	handler := newTestHandler(t, &fakeLLM{err: ErrUpstream})

	state := funnel.NewLeadState()
	state.Stage = funnel.StageCollectEmail
	state.Name = "Maya"
	rec := postJSON(t, handler.Turn, TurnRequest{Message: "maya@example.com", LeadState: state})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var resp TurnResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Reply) != 1 || !strings.Contains(resp.Reply[0], "something went wrong") {
		t.Errorf("reply = %v, want the apology", resp.Reply)
	}
	// The state the client sent must come back untouched.
	if resp.LeadState.Stage != funnel.StageCollectEmail || resp.LeadState.Email != "" {
		t.Errorf("lead state changed on failure: %+v", resp.LeadState)
	}
}

func TestHandlerTurn_BadJSON(t *testing.T) {
	handler := newTestHandler(t, &fakeLLM{reply: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Turn(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerStart_Created(t *testing.T) {
	handler := newTestHandler(t, &fakeLLM{reply: "Hey! I'm Ari. Who am I chatting with?"})

	rec := postJSON(t, handler.Start, StartRequest{LeadID: "lead-9"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp TurnResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.LeadState.Stage != funnel.StageGreeting {
		t.Errorf("stage = %s, want greeting", resp.LeadState.Stage)
	}
}
