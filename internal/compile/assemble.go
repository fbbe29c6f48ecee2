// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import "strings"

// fieldTag restricts a term to title/abstract text in PubMed query syntax.
const fieldTag = "[Title/Abstract]"

// pdatFmt is the PubMed publication-date format for PDAT filter clauses.
const pdatFmt = "2006/01/02"

// fieldClause renders one term as a field-restricted clause. Multi-word
// terms are quoted before the field tag is appended; single words are not.
func fieldClause(term string) string {
	if strings.Contains(term, " ") {
		return `"` + term + `"` + fieldTag
	}
	return term + fieldTag
}

// Assemble combines extracted terms, AI-expanded terms, a date constraint,
// and manual related terms into one PubMed boolean expression.
//
// Base terms are AND-joined: the literal query must match all user-stated
// concepts. AI terms form an OR bucket alongside the base group, broadening
// recall without weakening the conjunctive intent. A date range always
// narrows (AND). Related terms are OR'ed at the outermost level, after
// everything else. When no terms were extracted the fallback text is used
// verbatim so the user is never blocked by an empty query.
func Assemble(terms []Term, aiTerms []string, dates DateRange, fallback string, related []string) string {
	var term string

	if len(terms) == 0 {
		term = fallback
	} else {
		base := make([]string, len(terms))
		for i, t := range terms {
			base[i] = fieldClause(t.Text)
		}

		extra := make([]string, len(aiTerms))
		for i, t := range aiTerms {
			extra[i] = fieldClause(t)
		}

		if len(extra) > 0 {
			term = "((" + strings.Join(base, " AND ") + ") OR (" + strings.Join(extra, " OR ") + "))"
		} else {
			term = "(" + strings.Join(base, " AND ") + ")"
		}
	}

	if !dates.IsZero() {
		term += ` AND ("` + dates.Start.Format(pdatFmt) + `"[PDAT] : "` + dates.End.Format(pdatFmt) + `"[PDAT])`
	}

	if len(related) > 0 {
		alts := make([]string, len(related))
		for i, r := range related {
			alts[i] = "(" + r + ")"
		}
		term = "(" + term + ") OR " + strings.Join(alts, " OR ")
	}

	return term
}
