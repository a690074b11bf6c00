package funnel

import (
	"regexp"
	"strings"
)

// Field extractors pull one structured value out of a raw visitor message.
// A miss is not an error: the stage simply holds and the instruction builder
// re-asks on the next turn.

var emailRE = regexp.MustCompile(`[^\s@]+@[^\s@]+\.[^\s@]+`)

// candidate runs of phone characters; validated for significant length below.
var phoneRE = regexp.MustCompile(`[\d+\-() ]+`)

// minPhoneSignificant is the minimum count of non-space characters for a run
// to qualify as a phone number.
const minPhoneSignificant = 6

// ExtractEmail returns the first email-shaped substring of the message.
func ExtractEmail(message string) (string, bool) {
	match := emailRE.FindString(message)
	if match == "" {
		return "", false
	}
	return match, true
}

// ExtractPhone returns the first maximal run of digits, spaces, parentheses,
// '+' and '-' carrying at least six significant (non-space) characters.
func ExtractPhone(message string) (string, bool) {
	for _, candidate := range phoneRE.FindAllString(message, -1) {
		trimmed := strings.TrimSpace(candidate)
		significant := 0
		for _, r := range trimmed {
			if r != ' ' {
				significant++
			}
		}
		if significant >= minPhoneSignificant {
			return trimmed, true
		}
	}
	return "", false
}

// ExtractText returns the trimmed message verbatim. It only misses when the
// trimmed message is empty.
func ExtractText(message string) (string, bool) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}
