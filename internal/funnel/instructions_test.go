package funnel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInstructionsIncludesPreambleEveryStage(t *testing.T) {
	engine := newTestEngine(t, LocaleEN)
	for _, stage := range Stages() {
		got := engine.BuildInstructions(LeadState{Stage: stage, Name: "Alex", Industry: "dentistry"})
		assert.True(t, strings.HasPrefix(got, localePacks[LocaleEN].preamble), "stage %s missing preamble", stage)
		assert.Greater(t, len(got), len(localePacks[LocaleEN].preamble), "stage %s has no directive", stage)
	}
}

func TestBuildInstructionsInterpolatesFields(t *testing.T) {
	engine := newTestEngine(t, LocaleEN)

	got := engine.BuildInstructions(LeadState{Stage: StageIndustry, Name: "Alex Rivera"})
	assert.Contains(t, got, "Alex")
	assert.NotContains(t, got, "Rivera", "directives address the visitor by first name")

	got = engine.BuildInstructions(LeadState{Stage: StageExplaining, Name: "Alex", Industry: "dentistry"})
	assert.Contains(t, got, "dentistry")
}

func TestBuildInstructionsBookingUsesProposedSlots(t *testing.T) {
	engine := newTestEngine(t, LocaleEN)

	lead := LeadState{
		Stage:             StageBooking,
		ProposedSlots:     []string{"10:30am", "4:00pm"},
		ProposedDateLabel: "Thursday",
	}
	got := engine.BuildInstructions(lead)
	assert.Contains(t, got, "Thursday")
	assert.Contains(t, got, "10:30am")
	assert.Contains(t, got, "4:00pm")

	// Without slots the directive falls back to generic placeholder text.
	fallback := engine.BuildInstructions(LeadState{Stage: StageBooking})
	assert.NotContains(t, fallback, "%s")
	assert.NotEqual(t, got, fallback)
}

func TestBuildInstructionsConfirmedEmbedsAppointment(t *testing.T) {
	engine := newTestEngine(t, LocaleEN)
	got := engine.BuildInstructions(LeadState{Stage: StageConfirmed, AppointmentLabel: "Thursday at 4:00pm"})
	assert.Contains(t, got, "Thursday at 4:00pm")
}

func TestBuildInstructionsLocalesShareShape(t *testing.T) {
	en := newTestEngine(t, LocaleEN)
	es := newTestEngine(t, LocaleES)

	lead := LeadState{Stage: StageCollectEmail, Name: "Alex"}
	assert.NotEqual(t, en.BuildInstructions(lead), es.BuildInstructions(lead))

	require.True(t, LocaleEN.Valid())
	require.True(t, LocaleES.Valid())
	assert.False(t, Locale("fr").Valid())
}

func TestNewRejectsUnknownLocale(t *testing.T) {
	_, err := New(Locale("de"))
	require.Error(t, err)
}
