package peoplefinder

import (
	"context"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/request"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/result"
)

// Model turns a free-text query into text carrying a JSON block delimited
// by JSON_OUTPUT_START and JSON_OUTPUT_END. A Model that also implements
// HealthCheck(ctx) error is included in Health.
type Model interface {
	Complete(ctx context.Context, query string) (string, error)
}

// Employee is one employee record.
type Employee struct {
	ID         int64
	Name       string
	Role       string
	Location   string
	Experience int
	Skills     []string
}

// Page is one page of search results.
type Page struct {
	Results      []Employee
	TotalCount   int
	UsedFallback bool
	Path         string // "all", "structured" or "fallback"
	Filter       string // executed filter rendered for logs
	Page         int
	PageSize     int
}

// searchUseCase is the internal interface for search.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

// seedUseCase is the internal interface for dataset loading.
type seedUseCase interface {
	Seed(ctx context.Context, emps []domemp.Employee, reset bool) (int, error)
}

// invalidator drops the cached location universe after a seed.
type invalidator interface {
	Invalidate(ctx context.Context)
}

func employeeFromDomain(e *domemp.Employee) Employee {
	skills := e.Skills()
	if skills == nil {
		skills = []string{}
	}
	return Employee{
		ID:         e.ID(),
		Name:       e.Name(),
		Role:       e.Role(),
		Location:   e.Location(),
		Experience: e.Experience(),
		Skills:     skills,
	}
}

func employeeToDomain(e Employee) (domemp.Employee, error) {
	return domemp.New(e.ID, e.Name, e.Role, e.Location, e.Experience, e.Skills)
}

func pageFromDomain(p *result.Page) *Page {
	emps := p.Employees()
	out := &Page{
		Results:      make([]Employee, 0, len(emps)),
		TotalCount:   p.Total(),
		UsedFallback: p.UsedFallback(),
		Path:         string(p.Path()),
		Filter:       p.Filter().String(),
		Page:         p.Page(),
		PageSize:     p.PageSize(),
	}
	for i := range emps {
		out.Results = append(out.Results, employeeFromDomain(&emps[i]))
	}
	return out
}
