// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-explorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for PubMed retrieval.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Retmax is the default maximum number of PMIDs to retrieve when the
	// user does not override it (0 means use the per-query recommendation).
	Retmax int `json:"retmax" yaml:"retmax"`

	// APIKey is an optional NCBI API key for higher E-utilities rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Tool identifies this client to NCBI per E-utilities usage policy.
	Tool string `json:"tool" yaml:"tool"`
}

// AIConfig holds shared settings for stages that call the Groq chat API.
type AIConfig struct {
	// Model is the chat model identifier (e.g. "llama-3.1-8b-instant").
	Model string `json:"model" yaml:"model"`

	// APIKey is the Groq API key. Empty means the stage is disabled.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling randomness.
	Temperature float32 `json:"temperature" yaml:"temperature"`
}

// ExpansionConfig holds settings for AI term expansion. The toggle is an
// explicit field passed into each compile call, never ambient process state,
// so concurrent requests with different settings stay independent.
type ExpansionConfig struct {
	AIConfig `yaml:",inline"`

	// Enabled turns AI term expansion on or off.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxNewTerms caps the number of expansion terms added per query (default 6).
	MaxNewTerms int `json:"max_new_terms" yaml:"max_new_terms"`
}

// SynthesisConfig holds settings for evidence-grounded answer synthesis.
type SynthesisConfig struct {
	AIConfig `yaml:",inline"`
}

// HistoryConfig holds settings for the last-search store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default ".pubmed-explorer").
	Dir string `json:"dir" yaml:"dir"`
}
