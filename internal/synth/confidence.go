// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"regexp"
	"strings"
)

// Label is the coarse confidence grade for a synthesized answer.
type Label string

const (
	ConfidenceLow      Label = "Low"
	ConfidenceModerate Label = "Moderate"
	ConfidenceHigh     Label = "High"
)

// lowCues are explicit evidence-insufficiency phrases. Any single hit
// labels the answer Low, overriding hedge-word counting.
var lowCues = []string{
	"not enough evidence",
	"insufficient evidence",
	"do not directly address",
	"does not directly address",
	"cannot conclude",
	"not possible to conclude",
	"do not allow us to conclude",
	"limited direct evidence",
}

// moderateCues are hedge words; two or more distinct hits label the answer
// Moderate. Matched on word boundaries so "may" does not fire inside
// "maybe".
var moderateCues = []*regexp.Regexp{
	regexp.MustCompile(`\bsuggests\b`),
	regexp.MustCompile(`\bmay\b`),
	regexp.MustCompile(`\bmight\b`),
	regexp.MustCompile(`\bcould\b`),
	regexp.MustCompile(`\bindirect\b`),
	regexp.MustCompile(`\bmixed\b`),
	regexp.MustCompile(`\blimited\b`),
}

// Label justification sentences, fixed per label.
const (
	lowReason      = "The retrieved abstracts do not directly support a strong conclusion for this question."
	moderateReason = "Some evidence is relevant, but the conclusion relies on indirect or limited findings."
	highReason     = "Multiple statements appear directly supported by the retrieved abstracts."
)

// Classify inspects the wording of a synthesized answer and returns a
// confidence label with its justification. It is a pure function over the
// lowercased answer text: no backend calls. The Low check runs first and
// short-circuits, so explicit insufficiency language always wins.
func Classify(answer string) (Label, string) {
	t := strings.ToLower(answer)

	for _, cue := range lowCues {
		if strings.Contains(t, cue) {
			return ConfidenceLow, lowReason
		}
	}

	hits := 0
	for _, re := range moderateCues {
		if re.MatchString(t) {
			hits++
		}
	}
	if hits >= 2 {
		return ConfidenceModerate, moderateReason
	}

	return ConfidenceHigh, highReason
}
