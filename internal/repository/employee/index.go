package employee

import (
	"github.com/kailas-cloud/peoplefinder/internal/db"
	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
)

// Tag separators. Role and location are single-valued, so "|" never splits them.
const (
	scalarTagSeparator = "|"
	skillsTagSeparator = ","
)

// buildIndex describes the employee FT index over hashes under docPrefix.
func buildIndex(name, docPrefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		Prefix(docPrefix).
		Numeric(domemp.FieldID, true).
		Text(domemp.FieldName).
		Tag(domemp.FieldRole, scalarTagSeparator).
		Tag(domemp.FieldLocation, scalarTagSeparator).
		Numeric(domemp.FieldExperience, false).
		Tag(domemp.FieldSkills, skillsTagSeparator).
		Build()
}
