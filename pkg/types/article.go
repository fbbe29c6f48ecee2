// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pubmed-explorer:
// retrieved articles and the per-stage configuration structs.
package types

// NoAbstract is the sentinel returned when PubMed has no abstract text
// for an article.
const NoAbstract = "No abstract available."

// Article is one retrieved PubMed record. Fields come from the esummary
// and efetch endpoints; missing fields are zero values, never absent keys.
type Article struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title as returned by esummary.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date string as PubMed reports it
	// (e.g. "2021 Mar 15"); it is display text, not a parsed date.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// Abstract is the abstract text, or NoAbstract when PubMed has none.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// URL returns the canonical PubMed link for the article.
func (a Article) URL() string {
	return "https://pubmed.ncbi.nlm.nih.gov/" + a.PMID + "/"
}
