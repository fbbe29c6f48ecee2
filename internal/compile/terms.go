// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compile

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// TermSource identifies how a term entered the sequence.
type TermSource int

const (
	// TermQuoted is a phrase the user supplied in double quotes.
	TermQuoted TermSource = iota
	// TermExtracted is a phrase derived from chunking the topic text.
	TermExtracted
	// TermAIAdded is a phrase proposed by the AI expander.
	TermAIAdded
)

// String returns the trace label for the source.
func (s TermSource) String() string {
	switch s {
	case TermQuoted:
		return "quoted"
	case TermAIAdded:
		return "ai_added"
	default:
		return "extracted"
	}
}

// Term is a single search phrase, case-preserved, with its provenance.
type Term struct {
	Text   string
	Source TermSource
}

var quotedPhraseRe = regexp.MustCompile(`"([^"]+)"`)

// leadingArticleRe strips a determiner from the front of a chunk.
var leadingArticleRe = regexp.MustCompile(`^(?i)(?:the|a|an)\s+`)

// questionOperators are words that signal question scaffolding rather than
// topic content; a chunk whose first content word is one of these is
// dropped.
var questionOperators = map[string]bool{
	"how": true, "what": true, "why": true, "when": true, "where": true,
	"which": true, "does": true, "do": true, "did": true, "can": true,
	"could": true, "would": true, "will": true, "affect": true,
	"affects": true, "impact": true, "influence": true, "cause": true,
	"role": true, "effect": true, "effects": true, "association": true,
}

// stopwords is a fixed list of articles, prepositions, pronouns, and generic
// request verbs that carry no search signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"if": true, "of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "from": true, "by": true, "with": true, "about": true,
	"into": true, "over": true, "under": true, "between": true, "after": true,
	"before": true, "during": true, "since": true, "than": true, "as": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "am": true, "has": true, "have": true,
	"had": true, "does": true, "do": true, "did": true, "will": true,
	"would": true, "can": true, "could": true, "may": true, "might": true,
	"shall": true, "should": true, "must": true, "i": true, "you": true,
	"he": true, "she": true, "it": true, "we": true, "they": true,
	"me": true, "my": true, "your": true, "its": true, "our": true,
	"their": true, "this": true, "that": true, "these": true, "those": true,
	"there": true, "here": true, "what": true, "how": true, "why": true,
	"when": true, "where": true, "which": true, "who": true, "whom": true,
	"not": true, "no": true, "nor": true, "so": true, "too": true,
	"very": true, "any": true, "all": true, "some": true, "such": true,
	"other": true, "more": true, "most": true, "also": true, "just": true,
	"show": true, "find": true, "tell": true, "give": true, "please": true,
	"regarding": true, "concerning": true,
}

// ExtractTerms turns topic text into an ordered sequence of candidate search
// terms. Quoted substrings are extracted verbatim first and never further
// decomposed; the remaining text is chunked into noun-phrase-like spans.
// Deduplication is case-insensitive, order-preserving, first-seen-wins.
// The result may be empty (e.g. an all-stopword query).
func ExtractTerms(text string) []Term {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var terms []Term
	for _, m := range quotedPhraseRe.FindAllStringSubmatch(text, -1) {
		if q := strings.TrimSpace(m[1]); q != "" {
			terms = append(terms, Term{Text: q, Source: TermQuoted})
		}
	}

	rest := quotedPhraseRe.ReplaceAllString(text, " ")

	phrases, err := nounPhrases(rest)
	if err != nil {
		// Tagging failed; fall back to lexical splitting.
		phrases = lexicalTerms(rest)
	}
	for _, p := range phrases {
		terms = append(terms, Term{Text: p, Source: TermExtracted})
	}

	return dedupTerms(terms)
}

// nounPhrases extracts noun-phrase-like spans using part-of-speech tags:
// maximal token runs of determiners, adjectives, and nouns that contain at
// least one noun. Each span is cleaned and filtered by keepPhrase.
func nounPhrases(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}

	var phrases []string
	var run []prose.Token

	flush := func() {
		if p, ok := phraseFromRun(run); ok {
			phrases = append(phrases, p)
		}
		run = run[:0]
	}

	for _, tok := range doc.Tokens() {
		if nounPhraseTag(tok.Tag) {
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()

	return phrases, nil
}

// nounPhraseTag reports whether a Penn Treebank tag can appear inside a
// noun-phrase span.
func nounPhraseTag(tag string) bool {
	switch {
	case tag == "DT" || tag == "PDT":
		return true
	case strings.HasPrefix(tag, "JJ"):
		return true
	case strings.HasPrefix(tag, "NN"):
		return true
	}
	return false
}

// phraseFromRun turns a token run into a cleaned phrase, or reports
// ok=false when the run should be dropped.
func phraseFromRun(run []prose.Token) (string, bool) {
	hasNoun := false
	parts := make([]string, 0, len(run))
	for _, tok := range run {
		if strings.HasPrefix(tok.Tag, "NN") {
			hasNoun = true
		}
		parts = append(parts, tok.Text)
	}
	if !hasNoun {
		return "", false
	}

	phrase := leadingArticleRe.ReplaceAllString(strings.Join(parts, " "), "")
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return "", false
	}
	return phrase, keepPhrase(phrase)
}

// keepPhrase applies the scaffolding filters: drop a phrase whose first
// content word is a question operator, or whose words are all stopwords.
func keepPhrase(phrase string) bool {
	words := contentWords(phrase)
	if len(words) == 0 {
		return false
	}
	if questionOperators[words[0]] {
		return false
	}
	for _, w := range words {
		if !stopwords[w] {
			return true
		}
	}
	return false
}

// contentWords returns the lowercased alphabetic words of a phrase.
func contentWords(phrase string) []string {
	fields := strings.FieldsFunc(phrase, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// lexicalTerms is the fallback extraction strategy: split on whitespace and
// punctuation (hyphens kept), dropping short tokens and stopwords.
func lexicalTerms(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	var out []string
	for _, w := range fields {
		if len(w) <= 2 {
			continue
		}
		if stopwords[strings.ToLower(w)] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// dedupTerms removes case-insensitive duplicates, keeping the first-seen
// casing and insertion order. Stable ordering here is what makes query
// assembly reproducible.
func dedupTerms(terms []Term) []Term {
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		key := strings.ToLower(t.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
