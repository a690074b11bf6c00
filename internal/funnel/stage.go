package funnel

import "errors"

// Stage is one position in the fixed forward-ordered conversation funnel.
// A lead only ever moves forward through the order below, or holds in place
// when the visitor's reply doesn't satisfy the current stage.
type Stage string

const (
	StageGreeting     Stage = "greeting"
	StageCollectName  Stage = "collect_name"
	StageIndustry     Stage = "industry"
	StageExplaining   Stage = "explaining"
	StagePitchCall    Stage = "pitch_call"
	StageCollectEmail Stage = "collect_email"
	StageCollectPhone Stage = "collect_phone"
	StageCollectCity  Stage = "collect_city"
	StageBooking      Stage = "booking"
	StageConfirmed    Stage = "confirmed"
)

// ErrUnknownStage indicates a LeadState arrived with a stage outside the
// enumeration. This is a caller or storage bug, never a visitor-input problem.
var ErrUnknownStage = errors.New("funnel: unknown stage")

var stageOrder = [...]Stage{
	StageGreeting,
	StageCollectName,
	StageIndustry,
	StageExplaining,
	StagePitchCall,
	StageCollectEmail,
	StageCollectPhone,
	StageCollectCity,
	StageBooking,
	StageConfirmed,
}

// Index returns the stage's position in the funnel order, or -1 when the
// stage is not part of the enumeration.
func (s Stage) Index() int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// Valid reports whether the stage belongs to the enumeration.
func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Terminal reports whether the stage is absorbing.
func (s Stage) Terminal() bool {
	return s == StageConfirmed
}

// Stages returns the funnel order, first to last.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder[:])
	return out
}
