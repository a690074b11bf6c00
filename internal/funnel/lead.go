package funnel

// LeadState is the caller-owned qualification record threaded through every
// turn. The engine is a pure function over it: nothing is stored between
// invocations, and two concurrent turns for the same visitor are the caller's
// race to resolve at its persistence layer.
type LeadState struct {
	Stage Stage `json:"stage"`

	Name     string `json:"name,omitempty"`
	Industry string `json:"industry,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`

	// ProposedSlots holds the morning/afternoon pair offered on entering the
	// booking stage. Set at most once per booking attempt; later turns match
	// the visitor's reply against these exact labels.
	ProposedSlots     []string `json:"proposedSlots,omitempty"`
	ProposedDateLabel string   `json:"proposedDateLabel,omitempty"`

	// AppointmentLabel is the final "date at time" string, set only on the
	// transition into the confirmed stage.
	AppointmentLabel string `json:"appointmentLabel,omitempty"`

	// LeadID correlates this state with a record owned by the persistence
	// collaborator. The engine threads it through without interpreting it.
	LeadID string `json:"leadId,omitempty"`
}

// NewLeadState returns the state a caller should hold before the first turn.
func NewLeadState() LeadState {
	return LeadState{Stage: StageGreeting}
}
