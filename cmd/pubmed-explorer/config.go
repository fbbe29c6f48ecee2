// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-explorer/internal/compile"
	"github.com/pdiddy/pubmed-explorer/internal/expand"
	"github.com/pdiddy/pubmed-explorer/internal/llm"
	"github.com/pdiddy/pubmed-explorer/internal/secrets"
	"github.com/pdiddy/pubmed-explorer/internal/synth"
	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

// Default Groq models, overridable via config or secrets.
const (
	defaultExpandModel = "llama-3.1-8b-instant"
	defaultAnswerModel = "llama-3.1-70b-versatile"
)

// stringSetting resolves a config value: viper key, then secret file /
// environment, then fallback.
func stringSetting(viperKey, secretName, envKey, fallback string) string {
	if v := viper.GetString(viperKey); v != "" {
		return v
	}
	if v := secrets.Value(loadedSecrets, secretName, envKey); v != "" {
		return v
	}
	return fallback
}

func searchConfig() types.SearchConfig {
	timeout := viper.GetDuration("search.timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "pubmed-explorer/" + version,
		},
		Retmax: viper.GetInt("search.retmax"),
		APIKey: stringSetting("search.api_key", "ncbi-api-key", "NCBI_API_KEY", ""),
		Tool:   "pubmed-explorer",
	}
}

func expansionConfig(enabled bool) types.ExpansionConfig {
	return types.ExpansionConfig{
		AIConfig: types.AIConfig{
			Model:  stringSetting("expansion.model", "groq-model", "GROQ_MODEL", defaultExpandModel),
			APIKey: stringSetting("expansion.api_key", "groq-api-key", "GROQ_API_KEY", ""),
		},
		Enabled:     enabled,
		MaxNewTerms: viper.GetInt("expansion.max_new_terms"),
	}
}

func synthesisConfig() types.SynthesisConfig {
	return types.SynthesisConfig{
		AIConfig: types.AIConfig{
			Model:  stringSetting("synthesis.model", "groq-answer-model", "GROQ_ANSWER_MODEL", defaultAnswerModel),
			APIKey: stringSetting("synthesis.api_key", "groq-api-key", "GROQ_API_KEY", ""),
		},
	}
}

func historyConfig() types.HistoryConfig {
	cfg := types.HistoryConfig{Dir: viper.GetString("history.dir")}
	if cfg.Dir == "" {
		cfg.Dir = ".pubmed-explorer"
	}
	return cfg
}

func historyDir() string {
	return historyConfig().Dir
}

// newExpander wires the expansion capability: nil when expansion is off or
// no credential is configured, so compilation silently proceeds without it.
func newExpander(cfg types.ExpansionConfig) compile.Expander {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil
	}
	return &expand.Groq{
		Client: llm.NewClient(cfg.AIConfig),
		Model:  cfg.Model,
	}
}

// newSynthesizer wires the synthesis capability: the Disabled implementation
// when no credential is configured, the live Groq backend otherwise.
func newSynthesizer(cfg types.SynthesisConfig) synth.Synthesizer {
	if cfg.APIKey == "" {
		return synth.Disabled{}
	}
	return &synth.Groq{
		Client: llm.NewClient(cfg.AIConfig),
		Model:  cfg.Model,
	}
}
