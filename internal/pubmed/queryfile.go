// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-explorer/internal/compile"
	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

// QueryFile is the on-disk representation of one search and its results.
// A search can be saved to a file and re-rendered later without re-querying
// PubMed.
type QueryFile struct {
	Question string          `yaml:"question"`
	Term     string          `yaml:"term"`
	Trace    compile.Trace   `yaml:"trace"`
	Retmax   int             `yaml:"retmax"`
	Articles []types.Article `yaml:"articles"`
	Summary  QuerySummary    `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a compiled query and its results to a YAML file.
func WriteQueryFile(path, question string, res compile.Result, retmax int, articles []types.Article) error {
	qf := QueryFile{
		Question: question,
		Term:     res.Term,
		Trace:    res.Trace,
		Retmax:   retmax,
		Articles: articles,
		Summary: QuerySummary{
			Total:     len(articles),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
