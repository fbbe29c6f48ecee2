// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expand proposes additional loosely-related search phrases for a
// compiled query. The live implementation asks the Groq backend for plain
// synonyms and related phrases; every candidate passes a syntax-safety
// filter before it can reach query assembly. All failure paths (missing
// credentials, transport errors, unusable output) degrade to zero added
// terms; expansion never fails a compilation.
package expand

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/pdiddy/pubmed-explorer/internal/llm"
)

// Completer is the chat capability the live expander depends on; tests
// supply a mock, production wires *llm.Client.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Disabled is the no-op expander used when AI expansion is switched off or
// no credential is configured.
type Disabled struct{}

// Expand returns no terms.
func (Disabled) Expand(context.Context, string, []string, int) []string { return nil }

// expansionPromptTmpl asks for newline-separated plain phrases only; the
// safety filter still re-checks every line because model output is not
// trusted to follow instructions.
var expansionPromptTmpl = template.Must(template.New("expansion").Parse(`You help expand PubMed search keywords.
Task: Given a user's question and some seed terms, propose up to {{.MaxNew}} additional SEARCH TERMS or SHORT PHRASES.
Rules:
- Output ONLY a newline-separated list of terms (no bullets, no numbering).
- No boolean operators (AND/OR/NOT), no brackets, no field tags.
- Terms should be plain words/phrases suitable for Title/Abstract search.

User question: {{.Question}}
Seed terms: {{.Seeds}}
Additional terms:
`))

// Groq is the live expander backed by the Groq chat API.
type Groq struct {
	Client Completer

	// Model overrides the client default when set.
	Model string
}

// Expand proposes up to maxNew additional phrases for the question and seed
// terms. It never returns an error: any failure yields nil.
func (g *Groq) Expand(ctx context.Context, text string, seeds []string, maxNew int) []string {
	if g.Client == nil || maxNew <= 0 {
		return nil
	}

	var buf bytes.Buffer
	err := expansionPromptTmpl.Execute(&buf, struct {
		MaxNew   int
		Question string
		Seeds    string
	}{
		MaxNew:   maxNew,
		Question: text,
		Seeds:    strings.Join(seeds, ", "),
	})
	if err != nil {
		return nil
	}

	out, err := g.Client.Complete(ctx, llm.Request{
		User:        buf.String(),
		Model:       g.Model,
		Temperature: 0.2,
		MaxTokens:   200,
	})
	if err != nil {
		return nil
	}

	var lines []string
	for _, ln := range strings.Split(out, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return FilterCandidates(lines, seeds, maxNew)
}
