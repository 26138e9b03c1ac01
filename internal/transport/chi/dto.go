package chi

import (
	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/result"
)

// searchRequest is the POST /api/search body. Query is untyped so a
// non-string value can be rejected with the same message as a missing one.
type searchRequest struct {
	Query    any `json:"query"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type employeeResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Location   string   `json:"location"`
	Experience int      `json:"experience"`
	Skills     []string `json:"skills"`
}

type searchResponse struct {
	Results      []employeeResponse `json:"results"`
	TotalCount   int                `json:"totalCount"`
	UsedFallback bool               `json:"usedFallback"`
	Page         int                `json:"page"`
	PageSize     int                `json:"pageSize"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func employeeToResponse(e *domemp.Employee) employeeResponse {
	skills := e.Skills()
	if skills == nil {
		skills = []string{}
	}
	return employeeResponse{
		ID:         e.ID(),
		Name:       e.Name(),
		Role:       e.Role(),
		Location:   e.Location(),
		Experience: e.Experience(),
		Skills:     skills,
	}
}

func pageToResponse(p *result.Page) searchResponse {
	emps := p.Employees()
	items := make([]employeeResponse, len(emps))
	for i := range emps {
		items[i] = employeeToResponse(&emps[i])
	}
	return searchResponse{
		Results:      items,
		TotalCount:   p.Total(),
		UsedFallback: p.UsedFallback(),
		Page:         p.Page(),
		PageSize:     p.PageSize(),
	}
}
