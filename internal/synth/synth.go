// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth generates evidence-grounded answers from retrieved PubMed
// abstracts. Retrieved text is packaged into a bounded, sentinel-delimited
// context bundle and sent to the generative backend under a strict
// grounding instruction set; the backend may only cite the supplied
// records, never invent claims. A deterministic lexical heuristic then
// assigns the answer a coarse confidence label without further backend
// calls.
package synth

import (
	"context"
	"fmt"

	"github.com/pdiddy/pubmed-explorer/internal/llm"
	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

// Status reports how an Answer was produced.
type Status int

const (
	// StatusOK means the backend produced a grounded answer.
	StatusOK Status = iota
	// StatusDisabled means no credential is configured; evidence is still
	// fully browsable.
	StatusDisabled
	// StatusFailed means the backend call failed; the failure is surfaced
	// explicitly rather than swallowed.
	StatusFailed
)

// Answer is the synthesis output. It is never mutated after creation.
type Answer struct {
	// Markdown is the answer text, or a fixed explanatory message when
	// synthesis is disabled.
	Markdown string

	// Status distinguishes a real answer from a disabled or failed call.
	Status Status

	// Detail carries the failure description when Status is StatusFailed.
	Detail string

	// UsedPMIDs lists the records included in the context bundle, in order.
	UsedPMIDs []string
}

// disabledMessage is returned when no Groq credential is configured.
const disabledMessage = `AI answer is disabled.

To enable it locally:
1) Put your Groq API key in .secrets/groq-api-key (or set GROQ_API_KEY)
2) Re-run the command.

All retrieved abstracts remain fully browsable without it.`

// Synthesizer produces an answer for a question from retrieved articles.
// Implementations never panic past this boundary and never fabricate an
// answer on failure.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, articles []types.Article) Answer
}

// Disabled is the no-credential synthesizer; it returns the fixed
// explanatory message.
type Disabled struct{}

// Synthesize returns the disabled notice.
func (Disabled) Synthesize(context.Context, string, []types.Article) Answer {
	return Answer{Markdown: disabledMessage, Status: StatusDisabled}
}

// Completer is the chat capability the live synthesizer depends on; tests
// supply a mock, production wires *llm.Client.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Groq is the live synthesizer backed by the Groq chat API.
type Groq struct {
	Client Completer

	// Model overrides the client default when set.
	Model string
}

// Synthesize builds the context bundle and asks the backend for a grounded
// answer. Backend failures are converted to a StatusFailed Answer; they are
// never raised past this boundary.
func (g *Groq) Synthesize(ctx context.Context, question string, articles []types.Article) Answer {
	bundle, used := BuildContext(articles)

	prompt, err := renderPrompt(question, bundle)
	if err != nil {
		return Answer{Status: StatusFailed, Detail: fmt.Sprintf("rendering prompt: %v", err)}
	}

	out, err := g.Client.Complete(ctx, llm.Request{
		System:      synthesisSystem,
		User:        prompt,
		Model:       g.Model,
		Temperature: 0.2,
	})
	if err != nil {
		return Answer{Status: StatusFailed, Detail: err.Error(), UsedPMIDs: used}
	}
	if out == "" {
		out = "No response."
	}

	return Answer{Markdown: out, Status: StatusOK, UsedPMIDs: used}
}
