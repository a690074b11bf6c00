package funnel

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestProposeSlotsPicksMorningAndAfternoon(t *testing.T) {
	// Wednesday noon; the proposal targets Thursday.
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	engine, err := New(LocaleEN, WithClock(fixedClock(now)), WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	lead := NewLeadState()
	engine.ProposeSlots(&lead)

	require.Len(t, lead.ProposedSlots, 2)
	assert.Equal(t, "Thursday", lead.ProposedDateLabel)
	assert.Contains(t, localePacks[LocaleEN].morningSlots, lead.ProposedSlots[0])
	assert.Contains(t, localePacks[LocaleEN].afternoonSlots, lead.ProposedSlots[1])
}

func TestProposeSlotsIdempotent(t *testing.T) {
	engine, err := New(LocaleEN)
	require.NoError(t, err)

	lead := NewLeadState()
	engine.ProposeSlots(&lead)
	first := append([]string(nil), lead.ProposedSlots...)
	firstLabel := lead.ProposedDateLabel

	// A second call within the same booking attempt must not regenerate.
	for i := 0; i < 20; i++ {
		engine.ProposeSlots(&lead)
	}
	assert.Equal(t, first, lead.ProposedSlots)
	assert.Equal(t, firstLabel, lead.ProposedDateLabel)
}

func TestProposeSlotsHonorsTakenFilter(t *testing.T) {
	taken := map[string]bool{
		"9:00am": true, "9:30am": true, "10:00am": true, "10:30am": true,
	}
	engine, err := New(LocaleEN, WithSlotFilter(func(slot string) bool { return taken[slot] }))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		lead := NewLeadState()
		engine.ProposeSlots(&lead)
		assert.Equal(t, "11:00am", lead.ProposedSlots[0])
	}
}

func TestProposeSlotsFilterRejectingEverythingIsIgnored(t *testing.T) {
	engine, err := New(LocaleEN, WithSlotFilter(func(string) bool { return true }))
	require.NoError(t, err)

	lead := NewLeadState()
	engine.ProposeSlots(&lead)
	require.Len(t, lead.ProposedSlots, 2)
	assert.NotEmpty(t, lead.ProposedSlots[0])
	assert.NotEmpty(t, lead.ProposedSlots[1])
}

func TestProposeSlotsSpanishWeekday(t *testing.T) {
	now := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC) // Friday → sábado
	engine, err := New(LocaleES, WithClock(fixedClock(now)))
	require.NoError(t, err)

	lead := NewLeadState()
	engine.ProposeSlots(&lead)
	assert.Equal(t, "sábado", lead.ProposedDateLabel)
}
