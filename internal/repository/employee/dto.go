package employee

import (
	"fmt"
	"strconv"
	"strings"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
)

var returnFields = []string{
	domemp.FieldID,
	domemp.FieldName,
	domemp.FieldRole,
	domemp.FieldLocation,
	domemp.FieldExperience,
	domemp.FieldSkills,
}

// employeeToHash converts an employee to a map for HSET.
func employeeToHash(e *domemp.Employee) map[string]string {
	return map[string]string{
		domemp.FieldID:         strconv.FormatInt(e.ID(), 10),
		domemp.FieldName:       e.Name(),
		domemp.FieldRole:       e.Role(),
		domemp.FieldLocation:   e.Location(),
		domemp.FieldExperience: strconv.Itoa(e.Experience()),
		domemp.FieldSkills:     strings.Join(e.Skills(), skillsTagSeparator),
	}
}

// employeeFromHash hydrates an employee from FT.SEARCH fields.
func employeeFromHash(m map[string]string) (domemp.Employee, error) {
	id, err := strconv.ParseInt(m[domemp.FieldID], 10, 64)
	if err != nil {
		return domemp.Employee{}, fmt.Errorf("parse id %q: %w", m[domemp.FieldID], err)
	}

	exp := 0
	if raw := m[domemp.FieldExperience]; raw != "" {
		exp, err = strconv.Atoi(raw)
		if err != nil {
			return domemp.Employee{}, fmt.Errorf("parse experience %q: %w", raw, err)
		}
	}

	var skills []string
	if raw := m[domemp.FieldSkills]; raw != "" {
		skills = strings.Split(raw, skillsTagSeparator)
	}

	return domemp.Reconstruct(
		id,
		m[domemp.FieldName],
		m[domemp.FieldRole],
		m[domemp.FieldLocation],
		exp,
		skills,
	), nil
}
