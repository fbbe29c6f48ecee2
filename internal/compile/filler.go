// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"regexp"
	"strings"
)

// minRemainingChars is the shortest topic text a filler strip may leave
// behind; a strip that would leave less is rejected.
const minRemainingChars = 6

// frameRule matches one family of leading conversational filler. Rules are
// evaluated in fixed priority order; only the first matching rule is applied
// and at most one frame is ever removed.
type frameRule struct {
	name string
	re   *regexp.Regexp
}

// Each frame allows up to 80 characters of filler between the trigger word
// and the topic preposition. The filler class excludes sentence punctuation
// and quotes, and the quantifier is lazy so the strip ends at the FIRST
// topic preposition rather than swallowing part of the topic.
var fillerRules = []frameRule{
	{
		name: "wh-question",
		re:   regexp.MustCompile(`^(?i)\s*(?:what(?:'s| is)?|how|why|when|where|which)\b[^?.,;:"]{0,80}?\b(?:about|on|of|regarding|concerning)\b\s+`),
	},
	{
		name: "modal-polite",
		re:   regexp.MustCompile(`^(?i)\s*(?:can|could|would|will|may|might)\s+you\b[^?.,;:"]{0,80}?\b(?:about|on|of|regarding|concerning)\b\s+`),
	},
	{
		name: "imperative",
		re:   regexp.MustCompile(`^(?i)\s*(?:tell|explain|describe|summarize|outline|show|find|give)\b[^?.,;:"]{0,80}?\b(?:about|on|of|regarding|concerning)\b\s+`),
	},
	{
		name: "curiosity",
		re:   regexp.MustCompile(`^(?i)\s*i\s*(?:am|'m)\s*(?:curious|wondering|interested)\b[^?.,;:"]{0,80}?\b(?:about|on|of|regarding|concerning)\b\s+`),
	},
}

// cascadeStart rejects strips whose remainder opens with another question or
// modal word ("can you tell me what is ..."): only one frame may be removed.
var cascadeStart = regexp.MustCompile(`^(?i)(?:what|how|why|when|where|which|can|could|would|will)\b`)

// StripFiller removes at most one leading conversational frame from text.
// It returns the input unchanged when no frame matches, when the text opens
// with a quoted phrase (the quote is assumed to be the literal topic), when
// the remainder would drop below minRemainingChars, or when the remainder
// begins with another question word.
func StripFiller(text string) string {
	t := strings.TrimSpace(text)

	if strings.HasPrefix(t, `"`) {
		return t
	}

	for _, rule := range fillerRules {
		loc := rule.re.FindStringIndex(t)
		if loc == nil {
			continue
		}

		remainder := strings.TrimSpace(t[loc[1]:])
		if len(remainder) < minRemainingChars {
			return t
		}
		if cascadeStart.MatchString(remainder) {
			return t
		}
		return remainder
	}

	return t
}
