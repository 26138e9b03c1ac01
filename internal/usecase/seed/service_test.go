package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
)

// --- Mocks ---

type mockRepo struct {
	calls     []string
	batches   [][]domemp.Employee
	upsertErr error
	resetErr  error
	count     int
}

func (m *mockRepo) EnsureIndex(_ context.Context) error {
	m.calls = append(m.calls, "ensure")
	return nil
}

func (m *mockRepo) Reset(_ context.Context) error {
	m.calls = append(m.calls, "reset")
	return m.resetErr
}

func (m *mockRepo) UpsertMany(_ context.Context, emps []domemp.Employee) error {
	m.calls = append(m.calls, "upsert")
	m.batches = append(m.batches, emps)
	return m.upsertErr
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	m.calls = append(m.calls, "count")
	return m.count, nil
}

// --- Tests ---

const dataset = `[
  {"id": 1, "name": "Asha", "role": "Software Engineer", "location": "Mumbai", "experience": 5, "skills": ["Java"]},
  {"id": 2, "name": "Ravi", "role": "QA Engineer", "location": "Pune", "experience": 0, "skills": []},
  {"id": 3, "name": "Meera", "role": "Data Scientist", "location": "Bangalore", "experience": 10}
]`

func TestDecode(t *testing.T) {
	emps, err := Decode(strings.NewReader(dataset))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(emps) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(emps))
	}
	if emps[0].Name() != "Asha" || emps[0].Skills()[0] != "Java" {
		t.Errorf("unexpected first employee: %+v", emps[0])
	}
	if emps[1].Experience() != 0 {
		t.Errorf("expected zero experience kept, got %d", emps[1].Experience())
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"not json", `nope`, "decode dataset"},
		{"object", `{"id":1}`, "decode dataset"},
		{"invalid record", `[{"id":1,"name":"","role":"r","location":"l"}]`, "record 0"},
		{"duplicate id", `[{"id":1,"name":"a","role":"r","location":"l"},{"id":1,"name":"b","role":"r","location":"l"}]`,
			"duplicate id 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSeed_Batches(t *testing.T) {
	emps, err := Decode(strings.NewReader(dataset))
	if err != nil {
		t.Fatal(err)
	}
	repo := &mockRepo{count: 3}

	n, err := New(repo).WithBatchSize(2).Seed(context.Background(), emps, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
	if len(repo.batches) != 2 || len(repo.batches[0]) != 2 || len(repo.batches[1]) != 1 {
		t.Errorf("unexpected batches: %d", len(repo.batches))
	}
	if got := strings.Join(repo.calls, ","); got != "ensure,upsert,upsert,count" {
		t.Errorf("unexpected call order %s", got)
	}
}

func TestSeed_ResetFirst(t *testing.T) {
	repo := &mockRepo{}
	if _, err := New(repo).Seed(context.Background(), nil, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(repo.calls, ","); got != "reset,ensure,count" {
		t.Errorf("unexpected call order %s", got)
	}
}

func TestSeed_Errors(t *testing.T) {
	emps, err := Decode(strings.NewReader(dataset))
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	if _, err := New(&mockRepo{resetErr: boom}).Seed(context.Background(), emps, true); !errors.Is(err, boom) {
		t.Errorf("expected reset error, got %v", err)
	}

	repo := &mockRepo{upsertErr: boom}
	if _, err := New(repo).Seed(context.Background(), emps, false); !errors.Is(err, boom) {
		t.Errorf("expected upsert error, got %v", err)
	}
	if len(repo.batches) != 1 {
		t.Errorf("expected to stop after first failed batch, got %d", len(repo.batches))
	}
}
