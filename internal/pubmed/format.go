// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

// FormatTable writes articles as a human-readable table to w.
func FormatTable(articles []types.Article, w io.Writer) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-64s  %s\n", "Rank", "PMID", "Title", "Date")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, a := range articles {
		title := a.Title
		if len(title) > 64 {
			title = title[:61] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-10s  %-64s  %s\n", i+1, a.PMID, title, a.PubDate)
	}

	fmt.Fprintf(w, "\n%d results\n", len(articles))
}

// FormatJSON writes articles as indented JSON to w.
func FormatJSON(articles []types.Article, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}

// FormatSources writes each article with its link and full abstract to w.
func FormatSources(articles []types.Article, w io.Writer) {
	for _, a := range articles {
		fmt.Fprintf(w, "%s\n", a.Title)
		fmt.Fprintf(w, "  Date: %s\n", a.PubDate)
		fmt.Fprintf(w, "  PMID: %s\n", a.PMID)
		fmt.Fprintf(w, "  Link: %s\n", a.URL())
		fmt.Fprintf(w, "  %s\n\n", a.Abstract)
	}
}
