package service

import (
	"context"

	"github.com/MKhiriev/go-upload-desk/models"
)

const demoFavicon = "https://www.example.com/favicon.ico"

// searchService returns fixed demo payloads. The output depends on the query
// string only.
type searchService struct{}

func NewSearchService() SearchService {
	return &searchService{}
}

func (s *searchService) Autocomplete(_ context.Context, query string) []models.Suggestion {
	return []models.Suggestion{
		{Title: "Suggestion 1 for " + query, URL: "/suggestion1"},
		{Title: "Suggestion 2 for " + query, URL: "/suggestion2"},
		{Title: "Suggestion 3 for " + query, URL: "/suggestion3"},
	}
}

func (s *searchService) Search(_ context.Context, query string) []models.SearchResult {
	return []models.SearchResult{
		{
			Title:        "Search result for " + query,
			ResourceName: "Example Site 1",
			Favicon:      demoFavicon,
			Description:  "Description for search result 1",
			URL:          "https://www.example.com/search1",
			Category:     []string{"pdf"},
		},
		{
			Title:        "Another search result for " + query,
			ResourceName: "Example Site 2",
			Favicon:      demoFavicon,
			Description:  "Description for search result 2",
			URL:          "https://www.example.com/search2",
			Category:     []string{"video"},
		},
		{
			Title:        "Yet another search result for " + query,
			ResourceName: "Example Site 3",
			Favicon:      demoFavicon,
			Description:  "Description for search result 3",
			URL:          "https://www.example.com/search3",
			Category:     []string{"article"},
		},
	}
}
