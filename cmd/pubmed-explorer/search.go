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
)

var searchCmd = &cobra.Command{
	Use:   "search [question]",
	Short: "Search PubMed and list matching citations",
	Long: `Search compiles the question, queries PubMed, and lists the matching
citations without synthesizing an answer.

A search can be saved to a YAML file with --save and re-rendered later
with --load, which skips PubMed entirely.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("retmax", 0, "maximum number of results (0 = recommended for the query)")
	searchCmd.Flags().Bool("expand", true, "AI-expand search terms")
	searchCmd.Flags().String("related", "", "optional related terms (comma-separated)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("show-trace", false, "print the compiler's debug trace")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("load", "", "re-render a previously saved query file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	showTrace, _ := cmd.Flags().GetBool("show-trace")

	if path, _ := cmd.Flags().GetString("load"); path != "" {
		return renderQueryFile(path, asJSON, showTrace)
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Enter a query.")
		return fmt.Errorf("empty query")
	}

	ctx := context.Background()

	useExpand, _ := cmd.Flags().GetBool("expand")
	relatedFlag, _ := cmd.Flags().GetString("related")

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

	articles, err := client.Fetch(ctx, pmids)
	if err != nil {
		return err
	}

	if asJSON {
		if err := pubmed.FormatJSON(articles, os.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Printf("Query: %s\n\n", res.Term)
		pubmed.FormatTable(articles, os.Stdout)
	}

	if store, err := history.Open(historyDir()); err == nil {
		defer store.Close()
		rec := history.Record{
			Question: question,
			Term:     res.Term,
			PMIDs:    pmids,
			Retmax:   retmax,
			Trace:    res.Trace,
			Articles: articles,
		}
		if _, err := store.Save(ctx, rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save search: %v\n", err)
		}
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := pubmed.WriteQueryFile(path, question, res, retmax, articles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d results to %s\n", len(articles), path)
	}

	if showTrace {
		printTrace(res.Trace)
	}
	return nil
}

func renderQueryFile(path string, asJSON, showTrace bool) error {
	qf, err := pubmed.ReadQueryFile(path)
	if err != nil {
		return err
	}

	if asJSON {
		if err := pubmed.FormatJSON(qf.Articles, os.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Printf("Question: %s\nQuery: %s\nSaved: %s\n\n",
			qf.Question, qf.Term, qf.Summary.Timestamp.Format("2006-01-02 15:04"))
		pubmed.FormatTable(qf.Articles, os.Stdout)
	}

	if showTrace {
		printTrace(qf.Trace)
	}
	return nil
}
