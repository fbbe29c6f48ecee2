// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestArticleURL(t *testing.T) {
	a := Article{PMID: "12345678"}
	want := "https://pubmed.ncbi.nlm.nih.gov/12345678/"
	if got := a.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
