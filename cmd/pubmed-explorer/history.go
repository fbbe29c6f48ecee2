// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-explorer/internal/history"
	"github.com/pdiddy/pubmed-explorer/internal/pubmed"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previously stored searches",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored searches, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Re-render a stored search (the most recent one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of searches to list")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDir())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No stored searches.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%4d  %s  %2d papers  %s\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), len(rec.PMIDs), rec.Question)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDir())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	var rec *history.Record
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid search id %q", args[0])
		}
		rec, err = store.Get(ctx, id)
		if err != nil {
			return err
		}
	} else {
		if rec, err = store.Last(ctx); err != nil {
			return err
		}
	}
	if rec == nil {
		fmt.Println("No stored searches.")
		return nil
	}

	fmt.Printf("Question: %s\nQuery: %s\nSearched: %s\n",
		rec.Question, rec.Term, rec.CreatedAt.Format("2006-01-02 15:04"))

	if rec.Answer != "" {
		if rec.Confidence != "" {
			fmt.Printf("\nConfidence: %s\n", rec.Confidence)
		}
		fmt.Printf("\n%s\n", rec.Answer)
	}

	fmt.Printf("\nSources (%d papers):\n\n", len(rec.Articles))
	pubmed.FormatSources(rec.Articles, os.Stdout)
	return nil
}
