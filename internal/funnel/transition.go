package funnel

import (
	"fmt"
	"strings"
	"unicode"
)

// Advance computes the next lead state from the visitor's latest message.
// The stage either advances one step or holds; it never regresses. A field
// extraction miss is an expected outcome, not an error — the only error is
// a stage outside the enumeration, which signals an upstream bug.
//
// When the returned state has just entered the booking stage, the slot pair
// is proposed before returning so the instruction builder can reference it
// within the same turn.
func (e *Engine) Advance(lead LeadState, message string) (LeadState, error) {
	if !lead.Stage.Valid() {
		return lead, fmt.Errorf("%w: %q", ErrUnknownStage, lead.Stage)
	}

	next := lead

	switch lead.Stage {
	case StageGreeting:
		next.Stage = StageCollectName

	case StageCollectName:
		if value, ok := ExtractText(message); ok {
			if next.Name == "" {
				next.Name = value
			}
			next.Stage = StageIndustry
		}

	case StageIndustry:
		if value, ok := ExtractText(message); ok {
			if next.Industry == "" {
				next.Industry = value
			}
			next.Stage = StageExplaining
		}

	case StageExplaining:
		if e.isAffirmative(message) {
			next.Stage = StagePitchCall
		}

	case StagePitchCall:
		// A single-token name means we only have a first name; the reply at
		// this stage is the surname.
		if value, ok := ExtractText(message); ok && next.Name != "" && !strings.Contains(next.Name, " ") {
			next.Name = next.Name + " " + value
		}
		next.Stage = StageCollectEmail

	case StageCollectEmail:
		if value, ok := ExtractEmail(message); ok {
			if next.Email == "" {
				next.Email = value
			}
			next.Stage = StageCollectPhone
		}

	case StageCollectPhone:
		if value, ok := ExtractPhone(message); ok {
			if next.Phone == "" {
				next.Phone = value
			}
			next.Stage = StageCollectCity
		}

	case StageCollectCity:
		if value, ok := ExtractText(message); ok {
			if next.City == "" {
				next.City = value
			}
			next.Stage = StageBooking
		}

	case StageBooking:
		if slot, ok := matchSlot(message, next.ProposedSlots); ok {
			next.AppointmentLabel = next.ProposedDateLabel + e.pack.appointmentJoiner + slot
			next.Stage = StageConfirmed
		}

	case StageConfirmed:
		// Absorbing: no further mutation.
	}

	if next.Stage == StageBooking && len(next.ProposedSlots) == 0 {
		e.ProposeSlots(&next)
	}

	return next, nil
}

// matchSlot finds the first proposed slot label contained in the message,
// case-insensitively.
func matchSlot(message string, slots []string) (string, bool) {
	lower := strings.ToLower(message)
	for _, slot := range slots {
		if slot != "" && strings.Contains(lower, strings.ToLower(slot)) {
			return slot, true
		}
	}
	return "", false
}

// isAffirmative detects agreement in the visitor's message. Single keywords
// match whole words only; multi-word phrases match as substrings.
func (e *Engine) isAffirmative(message string) bool {
	lower := strings.ToLower(message)

	for _, phrase := range e.pack.affirmativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, word := range words {
		for _, keyword := range e.pack.affirmativeWords {
			if word == keyword {
				return true
			}
		}
	}
	return false
}
