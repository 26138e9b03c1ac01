package seed

import (
	"encoding/json"
	"fmt"
	"io"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
)

// record is one dataset entry.
type record struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Location   string   `json:"location"`
	Experience int      `json:"experience"`
	Skills     []string `json:"skills"`
}

// Decode reads a JSON array of employee records and validates each entry.
// Duplicate ids are rejected.
func Decode(r io.Reader) ([]domemp.Employee, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	out := make([]domemp.Employee, 0, len(records))
	seen := make(map[int64]int, len(records))
	for i, rec := range records {
		if prev, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %d (first at record %d)", i, rec.ID, prev)
		}
		seen[rec.ID] = i

		e, err := domemp.New(rec.ID, rec.Name, rec.Role, rec.Location, rec.Experience, rec.Skills)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
