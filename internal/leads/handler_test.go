package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/arielgp/salesfunnel-ai/pkg/logging"
)

func seedRepo(t *testing.T) *InMemoryRepository {
	t.Helper()
	repo := NewInMemoryRepository()
	leads := []*Lead{
		{ID: "lead-1", Stage: "collect_email", Name: "Alex Rivera", Industry: "dentistry"},
		{ID: "lead-2", Stage: "confirmed", Name: "Sam", AppointmentLabel: "Thursday at 4:00pm"},
	}
	for _, l := range leads {
		if err := repo.Upsert(context.Background(), l); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}
	return repo
}

func TestListLeads(t *testing.T) {
	handler := NewHandler(seedRepo(t), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var got []*Lead
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestListLeadsEmpty(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := w.Body.String(); body == "null\n" {
		t.Error("empty list should encode as [], not null")
	}
}

func TestGetLead(t *testing.T) {
	handler := NewHandler(seedRepo(t), logging.Default())

	r := chi.NewRouter()
	r.Get("/admin/leads/{leadID}", handler.GetLead)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads/lead-2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var got Lead
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.AppointmentLabel != "Thursday at 4:00pm" {
		t.Errorf("appointment = %q", got.AppointmentLabel)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	handler := NewHandler(seedRepo(t), logging.Default())

	r := chi.NewRouter()
	r.Get("/admin/leads/{leadID}", handler.GetLead)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewInMemoryRepository()
	lead := &Lead{ID: "lead-1", Stage: "greeting"}
	if err := repo.Upsert(context.Background(), lead); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, _ := repo.GetByID(context.Background(), "lead-1")

	lead.Stage = "collect_name"
	if err := repo.Upsert(context.Background(), lead); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, _ := repo.GetByID(context.Background(), "lead-1")

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("upsert must preserve created_at")
	}
	if second.Stage != "collect_name" {
		t.Errorf("stage = %s, want collect_name", second.Stage)
	}
}

func TestUpsertValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	if err := repo.Upsert(context.Background(), &Lead{Stage: "greeting"}); err != ErrMissingID {
		t.Errorf("err = %v, want ErrMissingID", err)
	}
	if err := repo.Upsert(context.Background(), &Lead{ID: "x"}); err != ErrMissingStage {
		t.Errorf("err = %v, want ErrMissingStage", err)
	}
}
