package firecrawl

type searchRequest struct {
	Query   string `json:"query"`
	Limit   int    `json:"limit,omitempty"`
	Lang    string `json:"lang,omitempty"`
	Country string `json:"country,omitempty"`
}

type searchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Markdown    string `json:"markdown,omitempty"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Data    []searchResult `json:"data"`
	Error   string         `json:"error,omitempty"`
}
