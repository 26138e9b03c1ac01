package result

import (
	"github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
)

// Path identifies which orchestrator branch produced a page.
type Path string

const (
	// PathAll is the explicit "all" wildcard: unfiltered listing.
	PathAll Path = "all"
	// PathFallback is the degraded role-substring search.
	PathFallback Path = "fallback"
	// PathStructured executes the interpreted filter.
	PathStructured Path = "structured"
)

// Page is one page of search results.
type Page struct {
	employees []employee.Employee
	total     int
	path      Path
	filter    filter.Structured
	page      int
	pageSize  int
}

// New creates a result page.
func New(
	employees []employee.Employee, total int, path Path,
	executed filter.Structured, page, pageSize int,
) Page {
	return Page{
		employees: employees, total: total, path: path,
		filter: executed, page: page, pageSize: pageSize,
	}
}

// Employees returns the records on this page.
func (p *Page) Employees() []employee.Employee { return p.employees }

// Total returns the match count across all pages.
func (p *Page) Total() int { return p.total }

// Path returns the branch that produced the page.
func (p *Page) Path() Path { return p.path }

// UsedFallback reports whether the degraded role search was used.
func (p *Page) UsedFallback() bool { return p.path == PathFallback }

// Filter returns the structured filter that was executed.
func (p *Page) Filter() filter.Structured { return p.filter }

// Page returns the echoed page number.
func (p *Page) Page() int { return p.page }

// PageSize returns the echoed page size.
func (p *Page) PageSize() int { return p.pageSize }
