package leads

import (
	"strings"
	"time"
)

// Lead is the durable qualification record mirroring the caller-held funnel
// state. It is keyed by the opaque lead ID the engine threads through.
type Lead struct {
	ID               string    `json:"id"`
	Stage            string    `json:"stage"`
	Name             string    `json:"name,omitempty"`
	Industry         string    `json:"industry,omitempty"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	City             string    `json:"city,omitempty"`
	AppointmentLabel string    `json:"appointment_label,omitempty"`
	Locale           string    `json:"locale,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Validate checks the record can be persisted.
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(l.Stage) == "" {
		return ErrMissingStage
	}
	return nil
}
