package filter

// Skills lists skill names extracted from a query. All takes precedence over Any.
type Skills struct {
	Any []string
	All []string
}

// IsEmpty reports whether neither list has entries.
func (s Skills) IsEmpty() bool { return len(s.Any) == 0 && len(s.All) == 0 }

// Model is the sparse filter extracted from model output after schema validation.
// The zero value means "no filter extracted".
type Model struct {
	Role       string
	Location   string
	Experience *Experience
	Skills     *Skills
}

// IsEmpty reports whether no field was extracted.
func (m Model) IsEmpty() bool {
	return m.Role == "" && m.Location == "" && m.Experience == nil && (m.Skills == nil || m.Skills.IsEmpty())
}

// Preprocessed is the filter produced locally without calling the model.
// At most one field is populated.
type Preprocessed struct {
	Experience *int
	Skills     []string
	Role       string
}

// IsEmpty reports whether no field was populated.
func (p Preprocessed) IsEmpty() bool {
	return p.Experience == nil && len(p.Skills) == 0 && p.Role == ""
}

// AsModel converts the preprocessed filter into model shape. Skills become an "any" set
// and experience an exact clause.
func (p Preprocessed) AsModel() Model {
	var m Model
	m.Role = p.Role
	if p.Experience != nil {
		e := ExactExperience(*p.Experience)
		m.Experience = &e
	}
	if len(p.Skills) > 0 {
		m.Skills = &Skills{Any: append([]string(nil), p.Skills...)}
	}
	return m
}
