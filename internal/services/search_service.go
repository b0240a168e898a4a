package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/votabienperu/comparador/internal/domain"
	"github.com/votabienperu/comparador/internal/observability"
	"github.com/votabienperu/comparador/internal/search"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50

	// overfetch widens the store query so ranking has candidates beyond the
	// first substring matches.
	overfetch = 3
)

// SearchService projects name matches into SearchableEntity values used to
// populate comparison slots.
type SearchService struct {
	Source       Source
	DefaultLimit int
	MaxLimit     int
}

func NewSearchService(src Source) *SearchService {
	return &SearchService{Source: src, DefaultLimit: DefaultSearchLimit, MaxLimit: MaxSearchLimit}
}

// Search returns up to limit entities of kind whose name matches query, most
// relevant first. A blank query returns an empty list without touching the
// store. KindAll searches both kinds concurrently and merges the results.
func (s *SearchService) Search(ctx context.Context, query string, kind domain.Kind, limit int) ([]domain.SearchableEntity, error) {
	tr := observability.Tracer("services")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(
			attribute.String("search.kind", string(kind)),
			attribute.Int("search.limit", limit),
		),
	)
	defer span.End()

	if kind == "" {
		kind = domain.KindAll
	}
	k, ok := domain.ParseKind(string(kind))
	if !ok {
		return nil, invalid("kind", "unsupported kind %q", kind)
	}
	kind = k
	query = strings.TrimSpace(query)
	if search.IsBlank(query) {
		return []domain.SearchableEntity{}, nil
	}
	limit = s.clamp(limit)
	searchRequests.WithLabelValues(string(kind)).Inc()

	var legs, cands []domain.SearchableEntity
	g, gctx := errgroup.WithContext(ctx)
	if kind == domain.KindLegislator || kind == domain.KindAll {
		g.Go(func() (err error) {
			legs, err = s.legislators(gctx, query, limit*overfetch)
			return err
		})
	}
	if kind == domain.KindCandidate || kind == domain.KindAll {
		g.Go(func() (err error) {
			cands, err = s.candidates(gctx, query, limit*overfetch)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := append(legs, cands...)
	return search.Rank(query, all, func(e domain.SearchableEntity) string { return e.Name }, limit), nil
}

func (s *SearchService) legislators(ctx context.Context, q string, n int) ([]domain.SearchableEntity, error) {
	rows, err := s.Source.SearchLegislators(ctx, q, n)
	if err != nil {
		return nil, fetchFailed("search", domain.KindLegislator, nil, err)
	}
	out := make([]domain.SearchableEntity, 0, len(rows))
	for i := range rows {
		if rows[i].Person == nil {
			continue
		}
		out = append(out, domain.SearchableFromLegislator(&rows[i]))
	}
	return out, nil
}

func (s *SearchService) candidates(ctx context.Context, q string, n int) ([]domain.SearchableEntity, error) {
	rows, err := s.Source.SearchCandidates(ctx, q, n)
	if err != nil {
		return nil, fetchFailed("search", domain.KindCandidate, nil, err)
	}
	out := make([]domain.SearchableEntity, 0, len(rows))
	for i := range rows {
		if rows[i].Person == nil {
			continue
		}
		out = append(out, domain.SearchableFromCandidate(&rows[i]))
	}
	return out, nil
}

func (s *SearchService) clamp(limit int) int {
	def, hi := s.DefaultLimit, s.MaxLimit
	if def <= 0 {
		def = DefaultSearchLimit
	}
	if hi <= 0 {
		hi = MaxSearchLimit
	}
	if limit <= 0 {
		limit = def
	}
	if limit > hi {
		limit = hi
	}
	return limit
}
