// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities endpoints for PubMed records:
// esearch for PMIDs, esummary for titles and dates, efetch for abstracts.
// Transport failures surface as hard errors; a silent empty result set
// would be misleading. Missing per-record fields, in contrast, always map
// to defined defaults, never absent keys.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-explorer/internal/httputil"
	"github.com/pdiddy/pubmed-explorer/pkg/types"
)

// eutilsBase is the NCBI E-utilities endpoint. Declared as a var so tests
// can substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Client calls the E-utilities endpoints.
type Client struct {
	HTTP *http.Client
	cfg  types.SearchConfig
}

// NewClient builds a PubMed client from search configuration.
func NewClient(cfg types.SearchConfig) *Client {
	if cfg.Tool == "" {
		cfg.Tool = "pubmed-explorer"
	}
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// params returns the query values shared by every E-utilities call.
func (c *Client) params() url.Values {
	v := url.Values{
		"db":   {"pubmed"},
		"tool": {c.cfg.Tool},
	}
	if c.cfg.APIKey != "" {
		v.Set("api_key", c.cfg.APIKey)
	}
	return v
}

// get issues one E-utilities GET with 429 retry and returns the response.
// The caller owns the body.
func (c *Client) get(ctx context.Context, endpoint string, v url.Values) (*http.Response, error) {
	reqURL := eutilsBase + "/" + endpoint + "?" + v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("E-utilities request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("E-utilities %s returned HTTP %d", endpoint, resp.StatusCode)
	}
	return resp, nil
}

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// Search returns the PMIDs matching term, in PubMed's relevance order,
// capped at retmax. An empty result is not an error.
func (c *Client) Search(ctx context.Context, term string, retmax int) ([]string, error) {
	if retmax <= 0 {
		retmax = 15
	}

	v := c.params()
	v.Set("term", term)
	v.Set("retmode", "json")
	v.Set("retmax", strconv.Itoa(retmax))

	resp, err := c.get(ctx, "esearch.fcgi", v)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var er esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	return er.Result.IDList, nil
}

// Summary holds the esummary fields this client uses.
type Summary struct {
	Title   string `json:"title"`
	PubDate string `json:"pubdate"`
}

// esummaryResponse keeps per-PMID entries as raw JSON because the result
// object mixes record objects with a "uids" string array.
type esummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

// Summaries returns title and publication date for each requested PMID.
// PMIDs missing from the response map to zero-value summaries, never
// absent keys.
func (c *Client) Summaries(ctx context.Context, pmids []string) (map[string]Summary, error) {
	out := make(map[string]Summary, len(pmids))
	if len(pmids) == 0 {
		return out, nil
	}

	v := c.params()
	v.Set("id", strings.Join(pmids, ","))
	v.Set("retmode", "json")

	resp, err := c.get(ctx, "esummary.fcgi", v)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var er esummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing esummary response: %w", err)
	}

	for _, pmid := range pmids {
		var s Summary
		if raw, ok := er.Result[pmid]; ok {
			// A malformed record decodes to the zero value, same as missing.
			json.Unmarshal(raw, &s)
		}
		out[pmid] = s
	}
	return out, nil
}

// efetch XML structures.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string         `xml:"PMID"`
	Article citationDetail `xml:"Article"`
}

type citationDetail struct {
	Abstract abstractNode `xml:"Abstract"`
}

type abstractNode struct {
	Texts []abstractText `xml:"AbstractText"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

// Abstracts returns the abstract text for each requested PMID. PMIDs with
// no abstract map to the NoAbstract sentinel, never absent keys. Structured
// abstracts keep their section labels ("METHODS: ...").
func (c *Client) Abstracts(ctx context.Context, pmids []string) (map[string]string, error) {
	out := make(map[string]string, len(pmids))
	for _, pmid := range pmids {
		out[pmid] = types.NoAbstract
	}
	if len(pmids) == 0 {
		return out, nil
	}

	v := c.params()
	v.Set("id", strings.Join(pmids, ","))
	v.Set("retmode", "xml")

	resp, err := c.get(ctx, "efetch.fcgi", v)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	for _, art := range set.Articles {
		if text := joinAbstract(art.Citation.Article.Abstract.Texts); text != "" {
			out[art.Citation.PMID] = text
		}
	}
	return out, nil
}

// joinAbstract flattens structured abstract sections into one string.
func joinAbstract(texts []abstractText) string {
	var parts []string
	for _, t := range texts {
		s := strings.TrimSpace(t.Text)
		if s == "" {
			continue
		}
		if t.Label != "" {
			s = t.Label + ": " + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// Fetch retrieves summaries and abstracts for pmids and assembles them into
// ordered Articles with display defaults filled in.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]types.Article, error) {
	summaries, err := c.Summaries(ctx, pmids)
	if err != nil {
		return nil, err
	}
	abstracts, err := c.Abstracts(ctx, pmids)
	if err != nil {
		return nil, err
	}

	articles := make([]types.Article, 0, len(pmids))
	for _, pmid := range pmids {
		s := summaries[pmid]
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = "No title"
		}
		date := s.PubDate
		if date == "" {
			date = "No date"
		}
		articles = append(articles, types.Article{
			PMID:     pmid,
			Title:    title,
			PubDate:  date,
			Abstract: abstracts[pmid],
		})
	}
	return articles, nil
}
