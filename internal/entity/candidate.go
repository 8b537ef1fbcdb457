package entity

import "strings"

// Candidate is a potential lead extracted by the model from search results.
// It only becomes a Lead when an operator promotes it.
type Candidate struct {
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Website      *string `json:"website"`
	BusinessType string  `json:"businessType"`
	Score        int     `json:"score"`
	Notes        string  `json:"notes"`
}

// Normalize cleans up what the model usually gets wrong: the string "null"
// in nullable fields, blank values and scores outside 0-100.
func (c *Candidate) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.BusinessType = strings.TrimSpace(c.BusinessType)
	c.Notes = strings.TrimSpace(c.Notes)
	c.Phone = nullable(c.Phone)
	c.Address = nullable(c.Address)
	c.Website = nullable(c.Website)

	if c.Score < 0 {
		c.Score = 0
	}
	if c.Score > 100 {
		c.Score = 100
	}
}

func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}

// SearchResult is one hit returned by the web search service.
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Markdown    string `json:"markdown,omitempty"`
}
