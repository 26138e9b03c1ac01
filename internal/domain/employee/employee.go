package employee

import (
	"fmt"
	"strings"
)

// Field names shared by the storage index and filter clauses.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldRole       = "role"
	FieldLocation   = "location"
	FieldExperience = "experience"
	FieldSkills     = "skills"
)

// MaxSkills is the maximum number of skills per employee.
const MaxSkills = 64

// Employee is an immutable employee record.
type Employee struct {
	id         int64
	name       string
	role       string
	location   string
	experience int
	skills     []string
}

// New validates and creates an Employee.
// Name, role and location are required; experience must be non-negative.
// Skill separators used by the storage layer (",", "|") are rejected.
func New(id int64, name, role, location string, experience int, skills []string) (Employee, error) {
	if id <= 0 {
		return Employee{}, fmt.Errorf("employee id must be positive, got %d", id)
	}
	if strings.TrimSpace(name) == "" {
		return Employee{}, fmt.Errorf("employee %d: name is required", id)
	}
	if strings.TrimSpace(role) == "" {
		return Employee{}, fmt.Errorf("employee %d: role is required", id)
	}
	if strings.TrimSpace(location) == "" {
		return Employee{}, fmt.Errorf("employee %d: location is required", id)
	}
	if strings.ContainsRune(role, '|') || strings.ContainsRune(location, '|') {
		return Employee{}, fmt.Errorf("employee %d: role and location must not contain '|'", id)
	}
	if experience < 0 {
		return Employee{}, fmt.Errorf("employee %d: experience must be non-negative", id)
	}
	if len(skills) > MaxSkills {
		return Employee{}, fmt.Errorf("employee %d: too many skills (max %d)", id, MaxSkills)
	}

	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.ContainsAny(s, ",|") {
			return Employee{}, fmt.Errorf("employee %d: skill %q must not contain ',' or '|'", id, s)
		}
		cleaned = append(cleaned, s)
	}

	return Employee{
		id:         id,
		name:       strings.TrimSpace(name),
		role:       strings.TrimSpace(role),
		location:   strings.TrimSpace(location),
		experience: experience,
		skills:     cleaned,
	}, nil
}

// Reconstruct creates an Employee without validation (storage hydration).
func Reconstruct(id int64, name, role, location string, experience int, skills []string) Employee {
	return Employee{id: id, name: name, role: role, location: location, experience: experience, skills: skills}
}

// ID returns the numeric employee identifier.
func (e *Employee) ID() int64 { return e.id }

// Name returns the employee name.
func (e *Employee) Name() string { return e.name }

// Role returns the job title.
func (e *Employee) Role() string { return e.role }

// Location returns the city or office.
func (e *Employee) Location() string { return e.location }

// Experience returns years of experience.
func (e *Employee) Experience() int { return e.experience }

// Skills returns the ordered skill list.
func (e *Employee) Skills() []string { return e.skills }
