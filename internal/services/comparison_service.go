package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/votabienperu/comparador/internal/domain"
	"github.com/votabienperu/comparador/internal/observability"
)

// ComparisonService runs the comparison pipeline:
//
//	validate → dedupe → resolve → fetch metrics (resolved ids only) → normalize → assemble
//
// The two fetches are sequential. The service holds no mutable state and is
// safe for concurrent use by independent requests.
type ComparisonService struct {
	Resolver *EntityResolver
	Metrics  *MetricsFetcher

	// MinIDs/MaxIDs bound the number of ids in a request.
	MinIDs int
	MaxIDs int

	// Now stamps comparison_date; defaults to time.Now.
	Now func() time.Time
}

// NewComparisonService wires resolver and fetcher over src with the default
// 2..4 id bounds.
func NewComparisonService(src Source) *ComparisonService {
	return &ComparisonService{
		Resolver: &EntityResolver{Source: src},
		Metrics:  &MetricsFetcher{Source: src},
		MinIDs:   DefaultMinIDs,
		MaxIDs:   DefaultMaxIDs,
		Now:      time.Now,
	}
}

// Compare validates req and builds the comparison. Validation errors are
// returned before any fetch; fetch errors fail the whole comparison.
func (s *ComparisonService) Compare(ctx context.Context, req domain.ComparisonRequest) (*domain.ComparisonResponse, error) {
	tr := observability.Tracer("services")
	ctx, span := tr.Start(ctx, "Compare",
		trace.WithAttributes(
			attribute.String("compare.mode", string(req.Mode)),
			attribute.Int("compare.ids", len(req.IDs)),
		),
	)
	defer span.End()

	resp, err := s.compare(ctx, req)
	switch {
	case err == nil:
		comparisonsTotal.WithLabelValues(string(req.Mode), "ok").Inc()
		for _, it := range resp.Items {
			comparisonItems.WithLabelValues(string(req.Mode), string(it.Status)).Inc()
		}
		span.SetAttributes(
			attribute.Int("compare.total_requested", resp.TotalRequested),
			attribute.Int("compare.total_available", resp.TotalAvailable),
		)
	case errors.Is(err, ErrValidation):
		comparisonsTotal.WithLabelValues(modeLabel(req.Mode), "validation_error").Inc()
		span.SetStatus(codes.Error, err.Error())
	default:
		comparisonsTotal.WithLabelValues(string(req.Mode), "fetch_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "data fetch failed")
		log.Error().Err(err).
			Str("entity_kind", string(req.Mode)).
			Strs("ids", req.IDs).
			Msg("comparison fetch failed")
	}
	return resp, err
}

func (s *ComparisonService) compare(ctx context.Context, req domain.ComparisonRequest) (*domain.ComparisonResponse, error) {
	if !req.Mode.Comparable() {
		return nil, invalid("mode", "must be %q or %q", domain.KindLegislator, domain.KindCandidate)
	}
	lo, hi := s.bounds()
	ids, err := ValidateIDs(req.IDs, lo, hi)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resolved, err := s.Resolver.Resolve(ctx, ids, req.Mode, req.Filters)
	observeFetch("resolve_"+string(req.Mode), start)
	if err != nil {
		return nil, err
	}

	found := make([]string, 0, len(resolved))
	for _, e := range resolved {
		found = append(found, e.ID())
	}

	start = time.Now()
	metrics, err := s.Metrics.Fetch(ctx, found, req.Mode)
	observeFetch("metrics_"+string(req.Mode), start)
	if err != nil {
		return nil, err
	}

	resp := Assemble(ids, resolved, metrics, s.now())
	return &resp, nil
}

func (s *ComparisonService) bounds() (int, int) {
	lo, hi := s.MinIDs, s.MaxIDs
	if lo <= 0 {
		lo = DefaultMinIDs
	}
	if hi <= 0 {
		hi = DefaultMaxIDs
	}
	return lo, hi
}

func (s *ComparisonService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// modeLabel keeps metric label cardinality bounded for invalid modes.
func modeLabel(k domain.Kind) string {
	if k.Comparable() {
		return string(k)
	}
	return "invalid"
}
