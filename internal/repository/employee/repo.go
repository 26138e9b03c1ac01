package employee

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/peoplefinder/internal/db"
	"github.com/kailas-cloud/peoplefinder/internal/domain"
	domemp "github.com/kailas-cloud/peoplefinder/internal/domain/employee"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
)

// store is the consumer interface for employee documents (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo stores employees as hashes behind an FT index.
type Repo struct {
	store  store
	prefix string
}

// New creates an employee repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// EnsureIndex creates the employee index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName(), err)
	}
	if exists {
		return nil
	}

	def, err := buildIndex(r.indexName(), r.docPrefix())
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		// lost a race with another writer
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// Reset drops the index together with all employee hashes and the location set.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName(), true); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.indexName(), err)
	}
	if err := r.store.Del(ctx, r.locationsKey()); err != nil {
		return fmt.Errorf("del %s: %w", r.locationsKey(), err)
	}
	return nil
}

// UpsertMany writes employees in one pipeline and records their locations.
func (r *Repo) UpsertMany(ctx context.Context, emps []domemp.Employee) error {
	if len(emps) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(emps))
	locations := make([]string, 0, len(emps))
	for i := range emps {
		e := &emps[i]
		items[i] = db.HashSetItem{Key: r.docKey(e.ID()), Fields: employeeToHash(e)}
		if !slices.Contains(locations, e.Location()) {
			locations = append(locations, e.Location())
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset employees: %w", err)
	}
	if err := r.store.SAdd(ctx, r.locationsKey(), locations...); err != nil {
		return fmt.Errorf("sadd %s: %w", r.locationsKey(), err)
	}
	return nil
}

// Find returns one page of employees matching f and the total match count.
// An empty filter matches every employee. Results are ordered by id.
func (r *Repo) Find(ctx context.Context, f filter.Structured, offset, limit int) ([]domemp.Employee, int, error) {
	q := &db.ListQuery{
		IndexName:    r.indexName(),
		Query:        buildQuery(f),
		Offset:       offset,
		Limit:        limit,
		ReturnFields: returnFields,
		SortBy:       domemp.FieldID,
	}

	res, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search %s: %w", q.Query, err)
	}
	if res == nil || res.Total == 0 {
		return []domemp.Employee{}, 0, nil
	}

	emps := make([]domemp.Employee, 0, len(res.Entries))
	for _, entry := range res.Entries {
		e, err := employeeFromHash(entry.Fields)
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", entry.Key, err)
		}
		emps = append(emps, e)
	}
	return emps, res.Total, nil
}

// Count returns the number of indexed employees.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), db.MatchAll)
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// DistinctLocations returns the known location values, sorted.
func (r *Repo) DistinctLocations(ctx context.Context) ([]string, error) {
	locs, err := r.store.SMembers(ctx, r.locationsKey())
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", r.locationsKey(), err)
	}
	slices.Sort(locs)
	return locs, nil
}

func (r *Repo) indexName() string    { return r.prefix + "employee:idx" }
func (r *Repo) docPrefix() string    { return r.prefix + "employee:" }
func (r *Repo) locationsKey() string { return r.prefix + "employee:locations" }

func (r *Repo) docKey(id int64) string {
	return fmt.Sprintf("%s%d", r.docPrefix(), id)
}
