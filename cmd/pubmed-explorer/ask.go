// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-explorer/internal/compile"
	"github.com/pdiddy/pubmed-explorer/internal/history"
	"github.com/pdiddy/pubmed-explorer/internal/pubmed"
	"github.com/pdiddy/pubmed-explorer/internal/synth"
	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Compile, search, and synthesize a grounded answer",
	Long: `Ask runs the full pipeline: the question is compiled into a PubMed query,
matching citations are retrieved, and an answer is synthesized exclusively
from the retrieved abstracts, with inline PMID citations and a heuristic
confidence label.

When the question, compiled query, and retrieved PMIDs all match the most
recent stored search, the stored answer is reused instead of calling the
backend again.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int("retmax", 0, "maximum number of results (0 = recommended for the query)")
	askCmd.Flags().Bool("expand", true, "AI-expand search terms")
	askCmd.Flags().String("related", "", "optional related terms (comma-separated), OR'ed to broaden recall")
	askCmd.Flags().Bool("show-trace", false, "print the compiler's debug trace")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Enter a query.")
		return fmt.Errorf("empty query")
	}

	ctx := context.Background()

	useExpand, _ := cmd.Flags().GetBool("expand")
	relatedFlag, _ := cmd.Flags().GetString("related")
	showTrace, _ := cmd.Flags().GetBool("show-trace")

	expCfg := expansionConfig(useExpand)
	res := compile.Compile(ctx, question, compile.Options{
		Expander:    newExpander(expCfg),
		MaxNewTerms: expCfg.MaxNewTerms,
		Related:     splitRelated(relatedFlag),
	})

	retmax := resolveRetmax(cmd, question)

	client := pubmed.NewClient(searchConfig())

	fmt.Fprintln(os.Stderr, "Searching PubMed...")
	pmids, err := client.Search(ctx, res.Term, retmax)
	if err != nil {
		return err
	}
	if len(pmids) == 0 {
		fmt.Println("No results found.")
		fmt.Printf("Query: %s\n", res.Term)
		return nil
	}

	fmt.Fprintln(os.Stderr, "Fetching summaries and abstracts...")
	articles, err := client.Fetch(ctx, pmids)
	if err != nil {
		return err
	}

	store, err := history.Open(historyDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	ans, label, reason := answerFor(ctx, store, question, res, pmids, articles)

	switch ans.Status {
	case synth.StatusFailed:
		fmt.Println("AI answer generation failed.")
		fmt.Println(ans.Detail)
	case synth.StatusDisabled:
		fmt.Println(ans.Markdown)
	default:
		fmt.Printf("Confidence: %s\n%s\n\n", label, reason)
		fmt.Println(ans.Markdown)
		fmt.Println("\nAll statements above are derived exclusively from the cited PubMed abstracts.")
	}

	fmt.Printf("\nSources (%d papers):\n\n", len(articles))
	pubmed.FormatSources(articles, os.Stdout)

	if store != nil {
		rec := history.Record{
			Question: question,
			Term:     res.Term,
			PMIDs:    pmids,
			Retmax:   retmax,
			Trace:    res.Trace,
			Articles: articles,
		}
		if ans.Status == synth.StatusOK {
			rec.Answer = ans.Markdown
			rec.Confidence = string(label)
		}
		if _, err := store.Save(ctx, rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save search: %v\n", err)
		}
	}

	if showTrace {
		printTrace(res.Trace)
	}
	return nil
}

// answerFor reuses the last stored answer when the memo key (question,
// compiled term, PMID sequence) is unchanged; otherwise it calls the
// synthesizer and classifies the fresh answer.
func answerFor(ctx context.Context, store *history.Store, question string, res compile.Result, pmids []string, articles []types.Article) (synth.Answer, synth.Label, string) {
	if store != nil {
		last, err := store.Last(ctx)
		if err == nil && last != nil && last.Answer != "" && last.Matches(question, res.Term, pmids) {
			fmt.Fprintln(os.Stderr, "Reusing answer from the previous identical search.")
			_, reason := synth.Classify(last.Answer)
			return synth.Answer{Markdown: last.Answer, Status: synth.StatusOK, UsedPMIDs: last.PMIDs},
				synth.Label(last.Confidence), reason
		}
	}

	fmt.Fprintln(os.Stderr, "Synthesizing answer from abstracts...")
	ans := newSynthesizer(synthesisConfig()).Synthesize(ctx, question, articles)
	if ans.Status != synth.StatusOK {
		return ans, "", ""
	}
	label, reason := synth.Classify(ans.Markdown)
	return ans, label, reason
}

// resolveRetmax picks the result budget: flag, then config, then the
// per-query recommendation.
func resolveRetmax(cmd *cobra.Command, question string) int {
	if n, _ := cmd.Flags().GetInt("retmax"); n > 0 {
		return n
	}
	if n := searchConfig().Retmax; n > 0 {
		return n
	}
	return compile.RecommendRetmax(question)
}

func splitRelated(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
