package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/peoplefinder/internal/db"
	"github.com/kailas-cloud/peoplefinder/internal/domain"
	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/request"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/result"
	"github.com/kailas-cloud/peoplefinder/internal/repository/cache"
	"github.com/kailas-cloud/peoplefinder/internal/repository/modelcache"
	"github.com/kailas-cloud/peoplefinder/internal/usecase/interpret"
)

// --- Mocks ---

// mockRepo evaluates filters in process over a fixed employee list.
type mockRepo struct {
	employees []domemp.Employee
	err       error
	calls     int
	last      filter.Structured
	offset    int
	limit     int
}

func (m *mockRepo) Find(
	_ context.Context, f filter.Structured, offset, limit int,
) ([]domemp.Employee, int, error) {
	m.calls++
	m.last, m.offset, m.limit = f, offset, limit
	if m.err != nil {
		return nil, 0, m.err
	}
	var matched []domemp.Employee
	for _, e := range m.employees {
		if f.Matches(e) {
			matched = append(matched, e)
		}
	}
	total := len(matched)
	if offset >= total {
		return []domemp.Employee{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

type mockLocations struct {
	locations []string
	err       error
	calls     int
}

func (m *mockLocations) Locations(_ context.Context) ([]string, error) {
	m.calls++
	return m.locations, m.err
}

type mockModel struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (m *mockModel) Complete(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.text, m.err
}

func (m *mockModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// brokenStore fails every cache operation.
type brokenStore struct{}

func (brokenStore) Get(_ context.Context, _ string) (string, error) {
	return "", errors.New("dial tcp: connection refused")
}

func (brokenStore) SetWithTTL(_ context.Context, _, _ string, _ time.Duration) error {
	return errors.New("dial tcp: connection refused")
}

func (brokenStore) Del(_ context.Context, _ ...string) error {
	return errors.New("dial tcp: connection refused")
}

// memStore is an in-memory cache store.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", db.ErrKeyNotFound
	}
	return v, nil
}

func (s *memStore) SetWithTTL(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]string)
	}
	s.data[key] = value
	return nil
}

func (s *memStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// --- Helpers ---

func fixtures(t *testing.T) []domemp.Employee {
	t.Helper()
	rows := []struct {
		name, role, location string
		exp                  int
		skills               []string
	}{
		{"Asha", "Software Engineer", "Mumbai", 5, []string{"Java", "Spring"}},
		{"Ravi", "Senior Software Engineer", "Mumbai", 8, []string{"Go", "Kubernetes"}},
		{"Meera", "Data Scientist", "Bangalore", 10, []string{"Python", "SQL"}},
		{"Karan", "QA Engineer", "Pune", 3, []string{"Selenium", "java"}},
		{"Divya", "Software Engineer", "Navi Mumbai", 6, []string{"JavaScript"}},
		{"Imran", "Product Manager", "Delhi", 10, nil},
	}
	out := make([]domemp.Employee, len(rows))
	for i, r := range rows {
		e, err := domemp.New(int64(i+1), r.name, r.role, r.location, r.exp, r.skills)
		if err != nil {
			t.Fatalf("fixture %s: %v", r.name, err)
		}
		out[i] = e
	}
	return out
}

var locationUniverse = []string{"Bangalore", "Delhi", "Mumbai", "Navi Mumbai", "Pune"}

func newRequest(t *testing.T, query string) *request.Request {
	t.Helper()
	req, err := request.New(query, 1, 20, 20, 100)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func newService(t *testing.T, model Model) (*Service, *mockRepo, *mockLocations) {
	t.Helper()
	repo := &mockRepo{employees: fixtures(t)}
	locs := &mockLocations{locations: locationUniverse}
	return New(repo, locs, model, interpret.NewBuilder(nil), nil), repo, locs
}

func names(page result.Page) []string {
	var out []string
	for _, e := range page.Employees() {
		out = append(out, e.Name())
	}
	return out
}

// --- Scenarios ---

func TestSearch_SingleSkillUsesPreprocessedFilter(t *testing.T) {
	model := &mockModel{text: "JSON_OUTPUT_START\n{}\nJSON_OUTPUT_END"}
	svc, repo, _ := newService(t, model)

	page, err := svc.Search(context.Background(), newRequest(t, "java"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := repo.last
	if f.Skills == nil || f.Skills.Mode() != filter.AnyOf || len(f.Skills.Patterns()) != 1 {
		t.Fatalf("expected skills any [Java], got %s", f)
	}
	if p := f.Skills.Patterns()[0]; p.Value() != "Java" || p.Kind() != filter.Contains {
		t.Errorf("expected contains Java, got %v", p)
	}
	if f.Role != nil || f.Location != nil || f.Experience != nil {
		t.Errorf("unexpected extra clauses: %s", f)
	}
	if page.UsedFallback() || page.Path() != result.PathStructured {
		t.Errorf("expected structured path, got %s", page.Path())
	}
	// "Java", "java" and "JavaScript" all contain "java"
	if page.Total() != 3 {
		t.Errorf("expected 3 matches, got %d: %v", page.Total(), names(page))
	}
	if model.callCount() != 1 {
		t.Errorf("expected one model call, got %d", model.callCount())
	}
}

func TestSearch_YearsIsExactExperience(t *testing.T) {
	svc, repo, _ := newService(t, &mockModel{text: "no block at all"})

	page, err := svc.Search(context.Background(), newRequest(t, "10 years"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := repo.last.Experience.Exact()
	if !ok || v != 10 {
		t.Fatalf("expected exact experience 10, got %s", repo.last)
	}
	if page.Total() != 2 || page.UsedFallback() {
		t.Errorf("expected 2 structured matches, got %d fallback=%v", page.Total(), page.UsedFallback())
	}
}

func TestSearch_CombinedModelFilter(t *testing.T) {
	model := &mockModel{text: `JSON_OUTPUT_START
{"role":"software engineer","location":"mumbai","experience":{"$gte":5}}
JSON_OUTPUT_END`}
	svc, repo, _ := newService(t, model)

	page, err := svc.Search(context.Background(), newRequest(t, "software eng in mumbai with 5 years experience"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := repo.last
	if f.Location == nil || f.Location.Kind() != filter.Anchored || f.Location.Value() != "Mumbai" {
		t.Errorf("expected location anchored to Mumbai, got %v", f.Location)
	}
	if f.Role == nil || f.Role.Kind() != filter.Contains || f.Role.Value() != "software engineer" {
		t.Errorf("expected role contains software engineer, got %v", f.Role)
	}
	if f.Experience == nil || f.Experience.GTE() == nil || *f.Experience.GTE() != 5 {
		t.Errorf("expected experience >=5, got %v", f.Experience)
	}
	got := names(page)
	if len(got) != 2 || got[0] != "Asha" || got[1] != "Ravi" {
		t.Errorf("expected [Asha Ravi], got %v", got)
	}
	if page.UsedFallback() {
		t.Error("structured search must not be flagged as fallback")
	}
}

func TestSearch_UnparseableFallsBackToRole(t *testing.T) {
	svc, repo, _ := newService(t, &mockModel{text: "I am not sure what you mean."})

	page, err := svc.Search(context.Background(), newRequest(t, "xyzabc123$$$"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := repo.last
	if f.Role == nil || f.Role.Kind() != filter.Contains || f.Role.Value() != "xyzabc123$$$" {
		t.Fatalf("expected role-only contains filter, got %s", f)
	}
	if f.Location != nil || f.Experience != nil || f.Skills != nil {
		t.Errorf("fallback must narrow on role only, got %s", f)
	}
	if !page.UsedFallback() || page.Path() != result.PathFallback {
		t.Errorf("expected fallback path, got %s", page.Path())
	}
	if page.Total() != 0 || page.Employees() == nil {
		t.Errorf("expected empty non-nil page, got %d", page.Total())
	}
}

func TestSearch_FallbackUsesNormalizedRole(t *testing.T) {
	svc, repo, _ := newService(t, &mockModel{text: "JSON_OUTPUT_START {} JSON_OUTPUT_END"})

	// "Software" is a denied skill, so preprocessing yields nothing.
	page, err := svc.Search(context.Background(), newRequest(t, "  Software "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.last.Role == nil || repo.last.Role.Value() != "software" {
		t.Fatalf("expected normalized role 'software', got %s", repo.last)
	}
	if !page.UsedFallback() || page.Total() != 3 {
		t.Errorf("expected 3 fallback matches, got %d fallback=%v", page.Total(), page.UsedFallback())
	}
}

func TestSearch_AllSkipsModel(t *testing.T) {
	for _, q := range []string{"all", " ALL ", "All"} {
		model := &mockModel{text: `JSON_OUTPUT_START {"role":"dev"} JSON_OUTPUT_END`}
		svc, repo, locs := newService(t, model)

		page, err := svc.Search(context.Background(), newRequest(t, q))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", q, err)
		}
		if !repo.last.IsEmpty() {
			t.Errorf("%q: expected empty filter, got %s", q, repo.last)
		}
		if page.Path() != result.PathAll || page.UsedFallback() {
			t.Errorf("%q: expected all path without fallback flag, got %s", q, page.Path())
		}
		if page.Total() != 6 {
			t.Errorf("%q: expected every employee, got %d", q, page.Total())
		}
		if model.callCount() != 0 || locs.calls != 0 {
			t.Errorf("%q: expected no model or location calls, got %d/%d", q, model.callCount(), locs.calls)
		}
	}
}

func TestSearch_ModelWinsOverPreprocessed(t *testing.T) {
	model := &mockModel{text: `JSON_OUTPUT_START {"skills":{"all":["python","sql"]}} JSON_OUTPUT_END`}
	svc, repo, _ := newService(t, model)

	page, err := svc.Search(context.Background(), newRequest(t, "python"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.last.Skills == nil || repo.last.Skills.Mode() != filter.AllOf {
		t.Fatalf("expected model all-of skills, got %s", repo.last)
	}
	if got := names(page); len(got) != 1 || got[0] != "Meera" {
		t.Errorf("expected [Meera], got %v", got)
	}
}

func TestSearch_Pagination(t *testing.T) {
	svc, repo, _ := newService(t, &mockModel{})

	req, err := request.New("all", 2, 4, 20, 100)
	if err != nil {
		t.Fatal(err)
	}
	page, err := svc.Search(context.Background(), &req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.offset != 4 || repo.limit != 4 {
		t.Errorf("expected offset 4 limit 4, got %d %d", repo.offset, repo.limit)
	}
	if page.Page() != 2 || page.PageSize() != 4 || len(page.Employees()) != 2 || page.Total() != 6 {
		t.Errorf("unexpected page: page=%d size=%d n=%d total=%d",
			page.Page(), page.PageSize(), len(page.Employees()), page.Total())
	}
}

// --- Failures ---

func TestSearch_ModelTimeoutDegrades(t *testing.T) {
	timeout := fmt.Errorf("complete: %w", domain.ErrModelTimeout)

	svc, _, _ := newService(t, &mockModel{err: timeout})
	page, err := svc.Search(context.Background(), newRequest(t, "10 years"))
	if err != nil {
		t.Fatalf("timeout must not fail the search: %v", err)
	}
	if page.UsedFallback() || page.Total() != 2 {
		t.Errorf("expected preprocessed filter, got fallback=%v total=%d", page.UsedFallback(), page.Total())
	}

	svc, _, _ = newService(t, &mockModel{err: timeout})
	page, err = svc.Search(context.Background(), newRequest(t, "lead in 2024!"))
	if err != nil {
		t.Fatalf("timeout must not fail the search: %v", err)
	}
	if !page.UsedFallback() {
		t.Error("expected fallback path after timeout with nothing preprocessed")
	}
}

func TestSearch_ModelErrorFails(t *testing.T) {
	svc, repo, _ := newService(t, &mockModel{err: fmt.Errorf("status 500: %w", domain.ErrModelProviderError)})

	_, err := svc.Search(context.Background(), newRequest(t, "java"))
	if !errors.Is(err, domain.ErrModelProviderError) {
		t.Fatalf("expected ErrModelProviderError, got %v", err)
	}
	if repo.calls != 0 {
		t.Error("storage must not be queried after a model failure")
	}
}

func TestSearch_LocationErrorFails(t *testing.T) {
	svc, _, locs := newService(t, &mockModel{})
	locs.err = errors.New("storage down")

	if _, err := svc.Search(context.Background(), newRequest(t, "java")); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_StorageErrorFails(t *testing.T) {
	svc, repo, _ := newService(t, &mockModel{})
	repo.err = &db.Error{Op: db.OpSearch, Err: errors.New("boom")}

	_, err := svc.Search(context.Background(), newRequest(t, "all"))
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestSearch_CountsPaths(t *testing.T) {
	paths := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_search_paths"}, []string{"path"})
	repo := &mockRepo{employees: fixtures(t)}
	svc := New(repo, &mockLocations{locations: locationUniverse}, &mockModel{}, interpret.NewBuilder(nil), paths)

	for _, q := range []string{"all", "java", "$$$", "%%%"} {
		if _, err := svc.Search(context.Background(), newRequest(t, q)); err != nil {
			t.Fatalf("%q: %v", q, err)
		}
	}
	for path, want := range map[result.Path]float64{
		result.PathAll: 1, result.PathStructured: 1, result.PathFallback: 2,
	} {
		if got := testutil.ToFloat64(paths.WithLabelValues(string(path))); got != want {
			t.Errorf("path %s = %v, want %v", path, got, want)
		}
	}
}

// --- Cache degradation ---

func TestSearch_CacheUnavailableReinvokesModel(t *testing.T) {
	stores := map[string]*cache.BestEffort{
		"disabled": cache.New(nil, "", nil, nil),
		"broken":   cache.New(brokenStore{}, "peoplefinder:", nil, nil),
	}
	for name, c := range stores {
		t.Run(name, func(t *testing.T) {
			inner := &mockModel{text: `JSON_OUTPUT_START {"role":"engineer"} JSON_OUTPUT_END`}
			cached := modelcache.New(inner, c, time.Hour, interpret.HasJSONBlock, nil)
			svc, _, _ := newService(t, cached)

			for i := 0; i < 3; i++ {
				page, err := svc.Search(context.Background(), newRequest(t, "engineers"))
				if err != nil {
					t.Fatalf("search %d: %v", i, err)
				}
				if page.Total() != 4 || page.UsedFallback() {
					t.Errorf("search %d: expected 4 structured matches, got %d", i, page.Total())
				}
			}
			if inner.callCount() != 3 {
				t.Errorf("expected model called on every search, got %d", inner.callCount())
			}
		})
	}
}

func TestSearch_CacheHitSkipsModel(t *testing.T) {
	inner := &mockModel{text: `JSON_OUTPUT_START {"location":"pune"} JSON_OUTPUT_END`}
	c := cache.New(&memStore{}, "peoplefinder:", nil, nil)
	svc, _, _ := newService(t, modelcache.New(inner, c, time.Hour, interpret.HasJSONBlock, nil))

	for i := 0; i < 3; i++ {
		page, err := svc.Search(context.Background(), newRequest(t, "people in pune"))
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if got := names(page); len(got) != 1 || got[0] != "Karan" {
			t.Errorf("search %d: expected [Karan], got %v", i, got)
		}
	}
	if inner.callCount() != 1 {
		t.Errorf("expected a single model call, got %d", inner.callCount())
	}
}

func TestSearch_MalformedResponseNotCached(t *testing.T) {
	inner := &mockModel{text: "garbled"}
	c := cache.New(&memStore{}, "", nil, nil)
	svc, _, _ := newService(t, modelcache.New(inner, c, time.Hour, interpret.HasJSONBlock, nil))

	for i := 0; i < 2; i++ {
		page, err := svc.Search(context.Background(), newRequest(t, "quality assurance"))
		if err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
		if page.Total() != 1 {
			t.Errorf("search %d: expected preprocessed role match, got %d", i, page.Total())
		}
	}
	if inner.callCount() != 2 {
		t.Errorf("malformed responses must not be cached, got %d model calls", inner.callCount())
	}
}
