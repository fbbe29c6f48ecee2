// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compile turns free-form natural-language questions into PubMed
// boolean query strings. The pipeline is deterministic and never fails:
// filler stripping, date extraction, term extraction, and assembly all
// degrade to defined fallbacks, so every input produces a usable query.
// Only the optional AI term expansion talks to the network, through the
// Expander capability, and it degrades to zero added terms on any failure.
package compile

import (
	"context"
	"strings"
	"time"
)

// maxSeedTerms caps how many extracted terms are handed to the expander.
const maxSeedTerms = 10

// defaultMaxNewTerms caps how many expansion terms are added per query.
const defaultMaxNewTerms = 6

// Expander proposes additional loosely-related search phrases from the
// original text and the extracted seed terms. Implementations must never
// fail: any backend problem degrades to an empty result. The zero-network
// implementation lives in internal/expand.
type Expander interface {
	Expand(ctx context.Context, text string, seeds []string, maxNew int) []string
}

// Options configures one compilation. The expansion toggle travels here as
// an explicit value rather than ambient process state.
type Options struct {
	// Expander supplies AI term expansion. Nil disables expansion.
	Expander Expander

	// MaxNewTerms caps expansion output (0 means defaultMaxNewTerms).
	MaxNewTerms int

	// Related holds manual user-supplied broadening terms, OR'ed at the
	// outermost level after AI expansion.
	Related []string

	// Now anchors "since YYYY" ranges; zero means time.Now. Tests pin it
	// for reproducible output.
	Now time.Time
}

// Trace records how a query was compiled. It is a pure projection of the
// compilation steps: the same input and expander output always reproduce
// the same trace.
type Trace struct {
	Original              string   `json:"original" yaml:"original"`
	CoreAfterFillerStrip  string   `json:"core_after_filler_strip" yaml:"core_after_filler_strip"`
	TermsUsed             []string `json:"terms_used" yaml:"terms_used"`
	AIAddedTerms          []string `json:"ai_added_terms" yaml:"ai_added_terms"`
	StartDate             string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate               string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	AIExpansionEnabled    bool     `json:"ai_expansion_enabled" yaml:"ai_expansion_enabled"`
	PubmedTerm            string   `json:"pubmed_term" yaml:"pubmed_term"`
	RelatedTerms          []string `json:"related_terms,omitempty" yaml:"related_terms,omitempty"`
	PubmedTermWithRelated string   `json:"pubmed_term_with_related,omitempty" yaml:"pubmed_term_with_related,omitempty"`
}

// Result is the compiled query plus its trace.
type Result struct {
	// Term is the final PubMed query string, including related terms.
	Term string

	// Terms is the ordered term sequence (quoted, extracted, then AI-added).
	Terms []Term

	// Trace records the compilation steps for display and tests.
	Trace Trace
}

const traceDateFmt = "2006-01-02"

// Compile converts raw user text into a PubMed query. It never returns an
// error: an empty or all-stopword input falls back to the literal text.
func Compile(ctx context.Context, raw string, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	original := strings.TrimSpace(raw)
	core := StripFiller(original)

	dates, topic := ExtractDates(core, now)

	terms := ExtractTerms(topic)

	maxNew := opts.MaxNewTerms
	if maxNew <= 0 {
		maxNew = defaultMaxNewTerms
	}

	var aiTerms []string
	if opts.Expander != nil && len(terms) > 0 {
		seeds := make([]string, 0, len(terms))
		for _, t := range terms {
			seeds = append(seeds, t.Text)
			if len(seeds) == maxSeedTerms {
				break
			}
		}
		aiTerms = opts.Expander.Expand(ctx, original, seeds, maxNew)
	}

	term := Assemble(terms, aiTerms, dates, core, nil)

	trace := Trace{
		Original:             original,
		CoreAfterFillerStrip: core,
		TermsUsed:            termTexts(terms),
		AIAddedTerms:         aiTerms,
		AIExpansionEnabled:   opts.Expander != nil,
		PubmedTerm:           term,
	}
	if !dates.IsZero() {
		trace.StartDate = dates.Start.Format(traceDateFmt)
		trace.EndDate = dates.End.Format(traceDateFmt)
	}

	all := terms
	for _, t := range aiTerms {
		all = append(all, Term{Text: t, Source: TermAIAdded})
	}

	final := term
	if len(opts.Related) > 0 {
		final = Assemble(terms, aiTerms, dates, core, opts.Related)
		trace.RelatedTerms = opts.Related
		trace.PubmedTermWithRelated = final
	}

	return Result{Term: final, Terms: all, Trace: trace}
}

func termTexts(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Text
	}
	return out
}
