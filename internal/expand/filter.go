// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expand

import (
	"regexp"
	"strings"
)

// Candidate phrases must stay plain: no field-tag or grouping characters
// and no boolean keywords, otherwise they would corrupt the assembled
// query syntax downstream.
var (
	badCharsRe  = regexp.MustCompile(`[\[\]():]`)
	badTokensRe = regexp.MustCompile(`(?i)\b(?:AND|OR|NOT)\b`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
)

const maxCandidateLen = 60

// cleanCandidate normalizes one raw candidate phrase and returns "" when
// the phrase must be rejected. Rules, in order: trim surrounding quotes and
// whitespace and collapse inner whitespace; reject empty or shorter than 3
// characters; reject query-syntax characters; reject boolean keywords;
// reject a leading '-'; reject longer than 60 characters.
func cleanCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	s = spaceRunRe.ReplaceAllString(s, " ")

	if len(s) < 3 {
		return ""
	}
	if badCharsRe.MatchString(s) {
		return ""
	}
	if badTokensRe.MatchString(s) {
		return ""
	}
	if strings.HasPrefix(s, "-") {
		return ""
	}
	if len(s) > maxCandidateLen {
		return ""
	}
	return s
}

// FilterCandidates applies the safety filter to raw candidate lines,
// rejecting case-insensitive duplicates of seed terms or earlier accepts,
// and truncates the result to maxNew. Accepted candidates keep their
// production order.
func FilterCandidates(raw []string, seeds []string, maxNew int) []string {
	seen := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		seen[strings.ToLower(s)] = true
	}

	var out []string
	for _, line := range raw {
		cand := cleanCandidate(line)
		if cand == "" {
			continue
		}
		key := strings.ToLower(cand)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cand)
		if len(out) == maxNew {
			break
		}
	}
	return out
}
