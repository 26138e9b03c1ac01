package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/normalize"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/request"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/result"
	"github.com/kailas-cloud/peoplefinder/internal/logger"
	"github.com/kailas-cloud/peoplefinder/internal/usecase/interpret"
)

// Service answers free-text employee searches.
type Service struct {
	repo      Repository
	locations LocationSource
	model     Model
	builder   FilterBuilder
	paths     *prometheus.CounterVec
}

// New creates a search service. paths is optional and counts searches by path.
func New(
	repo Repository, locations LocationSource, model Model,
	builder FilterBuilder, paths *prometheus.CounterVec,
) *Service {
	return &Service{repo: repo, locations: locations, model: model, builder: builder, paths: paths}
}

// Search interprets the query and returns one page of matching employees.
//
// The literal "all" lists everyone without calling the model. Otherwise the
// model filter (or, when it is empty, the locally preprocessed one) is built
// into clauses and executed. When no clause survives, the normalized query is
// matched as a role substring and the page is flagged as a fallback.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()
	query := req.Query()
	ctx = logger.With(ctx, zap.String("query", query))
	log := logger.FromContext(ctx)

	if normalize.IsWildcard(query) {
		return s.execute(ctx, log, req, filter.Structured{}, result.PathAll, start)
	}

	var (
		known []string
		pre   filter.Preprocessed
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		locs, err := s.locations.Locations(gctx)
		if err != nil {
			return fmt.Errorf("load locations: %w", err)
		}
		known = locs
		return nil
	})
	g.Go(func() error {
		pre = interpret.Preprocess(query)
		return nil
	})
	if err := g.Wait(); err != nil {
		return result.Page{}, err
	}

	extracted, err := s.extract(ctx, log, query)
	if err != nil {
		return result.Page{}, err
	}

	structured := s.builder.Build(interpret.Merge(extracted, pre), known)
	if structured.IsEmpty() {
		role := filter.NewContains(normalize.Role(query))
		return s.execute(ctx, log, req, filter.Structured{Role: &role}, result.PathFallback, start)
	}
	return s.execute(ctx, log, req, structured, result.PathStructured, start)
}

// extract asks the model for a filter. A timeout or an unusable response
// yields an empty filter; other model errors fail the search.
func (s *Service) extract(ctx context.Context, log *zap.Logger, query string) (filter.Model, error) {
	text, err := s.model.Complete(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrModelTimeout) {
			log.Warn("Model timed out, continuing without model filter", zap.Error(err))
			return filter.Model{}, nil
		}
		return filter.Model{}, fmt.Errorf("extract filter: %w", err)
	}

	m, err := interpret.ParseJSONBlock(text)
	if err != nil {
		log.Warn("Discarding model response", zap.Error(err))
	}
	return m, nil
}

func (s *Service) execute(
	ctx context.Context, log *zap.Logger, req *request.Request,
	f filter.Structured, path result.Path, start time.Time,
) (result.Page, error) {
	log.Debug("Executing filter", zap.String("path", string(path)), zap.Stringer("filter", f))

	emps, total, err := s.repo.Find(ctx, f, req.Skip(), req.PageSize())
	if err != nil {
		return result.Page{}, fmt.Errorf("find employees: %w", err)
	}

	if s.paths != nil {
		s.paths.WithLabelValues(string(path)).Inc()
	}
	log.Info("Search executed",
		zap.String("path", string(path)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return result.New(emps, total, path, f, req.Page(), req.PageSize()), nil
}
