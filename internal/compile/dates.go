// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"regexp"
	"time"
)

// Date phrase patterns, tried in order of specificity: an explicit
// "from YYYY to YYYY" range wins over an open-ended "since YYYY". Both are
// case-insensitive and match anywhere in the text.
var (
	yearRangeRe = regexp.MustCompile(`(?i)\bfrom\s+(\d{4})\s+(?:to|-)\s+(\d{4})\b`)
	sinceYearRe = regexp.MustCompile(`(?i)\bsince\s+(\d{4})\b`)
)

// DateRange is a closed, inclusive publication-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no date constraint was found.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// ExtractDates detects an explicit temporal qualifier in text and returns
// the implied range plus the text with the matched phrase removed, so the
// literal years do not pollute term extraction. A "since YYYY" phrase
// resolves its end date to now. An inverted explicit range (start after
// end) is treated as no match. When neither pattern matches, the returned
// range is zero and text is returned with date phrases still removed.
func ExtractDates(text string, now time.Time) (DateRange, string) {
	var r DateRange

	if m := yearRangeRe.FindStringSubmatch(text); m != nil {
		start := yearStart(m[1])
		end := yearEnd(m[2])
		if !start.After(end) {
			r = DateRange{Start: start, End: end}
		}
	} else if m := sinceYearRe.FindStringSubmatch(text); m != nil {
		r = DateRange{Start: yearStart(m[1]), End: now}
	}

	topic := yearRangeRe.ReplaceAllString(text, " ")
	topic = sinceYearRe.ReplaceAllString(topic, " ")
	return r, topic
}

func yearStart(y string) time.Time {
	return time.Date(atoiYear(y), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func yearEnd(y string) time.Time {
	return time.Date(atoiYear(y), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// atoiYear converts a \d{4} capture; the pattern guarantees four digits.
func atoiYear(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
