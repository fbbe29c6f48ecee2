// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		APIKey: "test-key",
	}
}

// withServer routes all E-utilities calls to handler for the duration of
// the test.
func withServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	orig := eutilsBase
	eutilsBase = srv.URL
	t.Cleanup(func() { eutilsBase = orig })
}

// --- Search ---

func TestSearch(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"esearchresult":{"count":"2","idlist":["11111111","22222222"]}}`)
	})

	c := NewClient(testCfg())
	pmids, err := c.Search(context.Background(), "caffeine[Title/Abstract]", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(pmids) != 2 || pmids[0] != "11111111" {
		t.Errorf("pmids = %v", pmids)
	}

	if gotPath != "/esearch.fcgi" {
		t.Errorf("path = %s", gotPath)
	}
	for key, want := range map[string]string{
		"db":      "pubmed",
		"term":    "caffeine[Title/Abstract]",
		"retmax":  "10",
		"retmode": "json",
		"api_key": "test-key",
		"tool":    "pubmed-explorer",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %s", key, got, want)
		}
	}
}

func TestSearchEmptyResult(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"esearchresult":{"count":"0","idlist":[]}}`)
	})

	pmids, err := NewClient(testCfg()).Search(context.Background(), "zzzz", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(pmids) != 0 {
		t.Errorf("pmids = %v, want none", pmids)
	}
}

func TestSearchServerError(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := NewClient(testCfg()).Search(context.Background(), "q", 10); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestSearchDefaultRetmax(t *testing.T) {
	var got string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("retmax")
		fmt.Fprint(w, `{"esearchresult":{"idlist":[]}}`)
	})

	if _, err := NewClient(testCfg()).Search(context.Background(), "q", 0); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got != "15" {
		t.Errorf("retmax = %s, want 15", got)
	}
}

// --- Summaries ---

func TestSummaries(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{
			"uids":["11111111","22222222"],
			"11111111":{"title":"Caffeine and sleep.","pubdate":"2021 Mar"},
			"22222222":{"title":"Sleep latency trial.","pubdate":"2020"}
		}}`)
	})

	got, err := NewClient(testCfg()).Summaries(context.Background(), []string{"11111111", "22222222", "33333333"})
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if got["11111111"].Title != "Caffeine and sleep." || got["11111111"].PubDate != "2021 Mar" {
		t.Errorf("summary = %+v", got["11111111"])
	}
	// A PMID missing from the response still gets an entry.
	if s, ok := got["33333333"]; !ok || s.Title != "" {
		t.Errorf("missing pmid entry = %+v, ok = %v", s, ok)
	}
}

// --- Abstracts ---

const efetchBody = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>11111111</PMID>
      <Article>
        <Abstract>
          <AbstractText Label="BACKGROUND">Caffeine is widely consumed.</AbstractText>
          <AbstractText Label="RESULTS">Sleep onset was delayed.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>22222222</PMID>
      <Article>
        <Abstract>
          <AbstractText>Plain unlabeled abstract.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestAbstracts(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, efetchBody)
	})

	got, err := NewClient(testCfg()).Abstracts(context.Background(), []string{"11111111", "22222222", "33333333"})
	if err != nil {
		t.Fatalf("Abstracts: %v", err)
	}

	want := "BACKGROUND: Caffeine is widely consumed.\nRESULTS: Sleep onset was delayed."
	if got["11111111"] != want {
		t.Errorf("structured abstract = %q, want %q", got["11111111"], want)
	}
	if got["22222222"] != "Plain unlabeled abstract." {
		t.Errorf("plain abstract = %q", got["22222222"])
	}
	if got["33333333"] != types.NoAbstract {
		t.Errorf("missing abstract = %q, want sentinel", got["33333333"])
	}
}

// --- Fetch ---

func TestFetch(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "esummary.fcgi"):
			fmt.Fprint(w, `{"result":{
				"uids":["11111111","22222222"],
				"11111111":{"title":"Caffeine and sleep.","pubdate":"2021 Mar"},
				"22222222":{}
			}}`)
		case strings.HasSuffix(r.URL.Path, "efetch.fcgi"):
			fmt.Fprint(w, efetchBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	articles, err := NewClient(testCfg()).Fetch(context.Background(), []string{"11111111", "22222222"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len = %d, want 2", len(articles))
	}

	a := articles[0]
	if a.PMID != "11111111" || a.Title != "Caffeine and sleep." || a.PubDate != "2021 Mar" {
		t.Errorf("article = %+v", a)
	}
	if !strings.Contains(a.Abstract, "BACKGROUND:") {
		t.Errorf("abstract = %q", a.Abstract)
	}

	// Missing summary fields fall back to display defaults.
	b := articles[1]
	if b.Title != "No title" || b.PubDate != "No date" {
		t.Errorf("defaults = %q / %q", b.Title, b.PubDate)
	}
}

func TestFetchOrderFollowsInput(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "esummary.fcgi") {
			fmt.Fprint(w, `{"result":{"uids":[]}}`)
			return
		}
		fmt.Fprint(w, `<PubmedArticleSet></PubmedArticleSet>`)
	})

	pmids := []string{"3", "1", "2"}
	articles, err := NewClient(testCfg()).Fetch(context.Background(), pmids)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for i, a := range articles {
		if a.PMID != pmids[i] {
			t.Errorf("articles[%d].PMID = %s, want %s", i, a.PMID, pmids[i])
		}
	}
}
