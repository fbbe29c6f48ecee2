// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-explorer/internal/compile"
)

var compileCmd = &cobra.Command{
	Use:   "compile [question]",
	Short: "Compile a natural-language question into a PubMed query",
	Long: `Compile runs only the query compiler: filler stripping, date extraction,
term extraction, optional AI expansion, and boolean assembly. It prints
the final query and the step-by-step trace without contacting PubMed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().Bool("expand", true, "AI-expand search terms")
	compileCmd.Flags().String("related", "", "optional related terms (comma-separated)")
	compileCmd.Flags().Bool("json", false, "print the trace as JSON only")

	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		fmt.Fprintln(os.Stderr, "Enter a query.")
		return fmt.Errorf("empty query")
	}

	useExpand, _ := cmd.Flags().GetBool("expand")
	relatedFlag, _ := cmd.Flags().GetString("related")
	asJSON, _ := cmd.Flags().GetBool("json")

	expCfg := expansionConfig(useExpand)
	res := compile.Compile(context.Background(), question, compile.Options{
		Expander:    newExpander(expCfg),
		MaxNewTerms: expCfg.MaxNewTerms,
		Related:     splitRelated(relatedFlag),
	})

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Trace)
	}

	fmt.Printf("Query: %s\n", res.Term)
	printTrace(res.Trace)
	return nil
}

func printTrace(tr compile.Trace) {
	fmt.Println("\nTrace:")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tr); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not render trace: %v\n", err)
	}
}
