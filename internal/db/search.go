package db

// MatchAll is the FT.SEARCH query that selects every indexed document.
const MatchAll = "*"

// ListQuery is the input for a paginated FT.SEARCH.
type ListQuery struct {
	IndexName    string
	Query        string
	Offset       int
	Limit        int
	ReturnFields []string
	SortBy       string // optional SORTABLE field, ascending
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
