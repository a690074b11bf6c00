package funnel

import (
	"regexp"
	"strings"
)

// segmentLineWidth approximates how many characters fit on one chat bubble line.
const segmentLineWidth = 50

// segmentMaxLines caps the estimated height of a single bubble.
const segmentMaxLines = 2

var sentenceSplitRE = regexp.MustCompile(`([.!?]+)\s+`)

// Segment splits a generated reply into display-sized chunks, cutting only on
// sentence boundaries. The result is never empty and no segment is empty; a
// reply that fits in one segment is returned verbatim.
func Segment(reply string) []string {
	sentences := splitSentences(reply)
	if len(sentences) <= 1 {
		return []string{reply}
	}

	var segments []string
	var current []string
	cost := 0

	for _, sentence := range sentences {
		sentenceCost := lineCost(sentence)
		if len(current) > 0 && cost+sentenceCost > segmentMaxLines {
			segments = append(segments, strings.Join(current, " "))
			current = current[:0]
			cost = 0
		}
		current = append(current, sentence)
		cost += sentenceCost
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}

	if len(segments) == 1 {
		return []string{reply}
	}
	return segments
}

// splitSentences cuts on terminal punctuation followed by whitespace, keeping
// the punctuation with its sentence. Text after the last terminator is its
// own trailing sentence.
func splitSentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var sentences []string
	rest := trimmed
	for {
		loc := sentenceSplitRE.FindStringIndex(rest)
		if loc == nil {
			break
		}
		punctEnd := loc[0] + len(sentenceSplitRE.FindStringSubmatch(rest[loc[0]:])[1])
		sentences = append(sentences, rest[:punctEnd])
		rest = rest[loc[1]:]
	}
	if rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func lineCost(sentence string) int {
	return (len(sentence) + segmentLineWidth - 1) / segmentLineWidth
}
