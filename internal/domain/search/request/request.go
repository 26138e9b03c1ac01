package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength  = 512
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxResultWindow matches the RediSearch MAXSEARCHRESULTS default;
	// offset plus page size may not exceed it.
	MaxResultWindow = 10000
)

// Request is a validated free-text search request.
type Request struct {
	query    string
	page     int
	pageSize int
}

// New validates search parameters. The query is kept verbatim (it doubles as the cache key).
// Non-positive page and pageSize fall back to defaults; pageSize is clamped to maxPageSize.
func New(query string, page, pageSize, defaultPageSize, maxPageSize int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if pageSize > MaxResultWindow {
		pageSize = MaxResultWindow
	}
	if page > MaxResultWindow/pageSize {
		return Request{}, fmt.Errorf("%w: page %d is beyond the first %d results", domain.ErrInvalidQuery, page, MaxResultWindow)
	}

	return Request{query: query, page: page, pageSize: pageSize}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the number of records per page.
func (r *Request) PageSize() int { return r.pageSize }

// Skip returns the number of records before this page.
func (r *Request) Skip() int { return (r.page - 1) * r.pageSize }
