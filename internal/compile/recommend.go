// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"regexp"
	"strings"
)

var (
	wordRe = regexp.MustCompile(`[a-z0-9]+`)
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// broadStarters are question openers that suggest a wide topic.
var broadStarters = map[string]bool{
	"how": true, "what": true, "why": true, "when": true, "where": true,
	"which": true, "does": true, "do": true, "can": true,
}

// RecommendRetmax suggests a result-count budget from query breadth
// signals: broad question openers and short queries raise it, quoted
// phrases and explicit years lower it. The value is advisory only; it
// seeds the default for the --retmax flag.
func RecommendRetmax(query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 15
	}

	words := wordRe.FindAllString(q, -1)

	score := 0
	if len(words) > 0 && broadStarters[words[0]] {
		score++
	}
	switch {
	case len(words) <= 6:
		score += 2
	case len(words) <= 10:
		score++
	}
	if strings.Contains(q, `"`) || yearRe.MatchString(q) {
		score--
	}

	switch {
	case score >= 3:
		return 25
	case score == 2:
		return 20
	case score == 1:
		return 15
	default:
		return 12
	}
}
