package funnel

import (
	"fmt"
	"math/rand"
	"time"
)

// SlotFilter reports whether a slot label is already taken and must not be
// offered. Supplied by an external calendar collaborator; nil means every
// pool member is eligible.
type SlotFilter func(slot string) bool

// Engine drives the scripted qualification funnel for one locale. It holds
// no conversation state: every method is a computation over the caller's
// LeadState and message.
type Engine struct {
	locale Locale
	pack   *localePack

	now   func() time.Time
	rng   *rand.Rand
	taken SlotFilter
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for slot proposals.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRand overrides the random source used to pick slot candidates.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSlotFilter injects a taken-slot filter from a calendar collaborator.
func WithSlotFilter(filter SlotFilter) Option {
	return func(e *Engine) {
		e.taken = filter
	}
}

// New builds an engine for the given locale.
func New(locale Locale, opts ...Option) (*Engine, error) {
	pack, ok := localePacks[locale]
	if !ok {
		return nil, fmt.Errorf("funnel: unsupported locale %q", locale)
	}
	e := &Engine{
		locale: locale,
		pack:   pack,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Locale returns the locale the engine was built for.
func (e *Engine) Locale() Locale {
	return e.locale
}

// Apology is the fixed reply callers substitute when the upstream
// text-generation call fails for a turn.
func (e *Engine) Apology() string {
	return e.pack.apology
}
