package models

// Suggestion is a single autocomplete entry.
type Suggestion struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SearchResult is a single search hit as rendered by the web client.
type SearchResult struct {
	Title        string   `json:"title"`
	ResourceName string   `json:"resource-name"`
	Favicon      string   `json:"favicon"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Category     []string `json:"category"`
}
