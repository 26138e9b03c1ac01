package employee

import "testing"

func TestNew_Valid(t *testing.T) {
	e, err := New(7, " Asha Rao ", "Software Engineer", "Mumbai", 5, []string{"Go", " ", "Python "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name() != "Asha Rao" {
		t.Errorf("expected trimmed name, got %q", e.Name())
	}
	if len(e.Skills()) != 2 || e.Skills()[1] != "Python" {
		t.Errorf("expected blank skills dropped and trimmed, got %v", e.Skills())
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       int64
		empName  string
		role     string
		location string
		exp      int
		skills   []string
	}{
		{"zero id", 0, "a", "r", "l", 1, nil},
		{"empty name", 1, " ", "r", "l", 1, nil},
		{"empty role", 1, "a", "", "l", 1, nil},
		{"empty location", 1, "a", "r", "", 1, nil},
		{"negative experience", 1, "a", "r", "l", -1, nil},
		{"pipe in location", 1, "a", "r", "New|York", 1, nil},
		{"comma in skill", 1, "a", "r", "l", 1, []string{"Go,Rust"}},
		{"pipe in role", 1, "a", "QA|Dev", "l", 1, nil},
		{"pipe in skill", 1, "a", "r", "l", 1, []string{"Go|Rust"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.empName, tc.role, tc.location, tc.exp, tc.skills); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
