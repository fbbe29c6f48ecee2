// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

const (
	// maxContextArticles caps how many records one synthesis call may use;
	// callers pass records in relevance order, so the cap keeps the best.
	maxContextArticles = 8

	// maxAbstractChars caps each record's abstract inside the bundle.
	maxAbstractChars = 1800
)

// BuildContext packages articles into the bounded context bundle passed to
// the generative backend, returning the bundle text and the PMIDs used.
// Each record is framed by sentinel markers so its text is presented as
// quoted data rather than instructions.
// Zero articles yield an empty bundle and an empty used list.
func BuildContext(articles []types.Article) (string, []string) {
	if len(articles) > maxContextArticles {
		articles = articles[:maxContextArticles]
	}

	used := make([]string, 0, len(articles))
	blocks := make([]string, 0, len(articles))
	for _, a := range articles {
		used = append(used, a.PMID)
		blocks = append(blocks, fmt.Sprintf(
			"<<<BEGIN ARTICLE PMID=%s>>>\nTitle: %s\nDate: %s\nAbstract: %s\n<<<END ARTICLE PMID=%s>>>",
			a.PMID, a.Title, a.PubDate, truncateAtWord(a.Abstract, maxAbstractChars), a.PMID,
		))
	}

	return strings.Join(blocks, "\n"), used
}

// truncateAtWord shortens text to at most max characters, cutting at a word
// boundary and appending an ellipsis marker when truncated.
func truncateAtWord(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}

	cut := text[:max-3]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	// The byte slice can split a multibyte rune; drop the fragment.
	for len(cut) > 0 {
		if r, size := utf8.DecodeLastRuneInString(cut); r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return strings.TrimRight(cut, " \t\n") + "..."
}
