package services

import (
	"context"

	"github.com/votabienperu/comparador/internal/domain"
)

// MetricsFetcher loads precomputed metrics rows keyed by entity id.
type MetricsFetcher struct {
	Source Source
}

// Fetch must be given the resolved ids only. Entities without a metrics row
// are absent from the map; that is not an error.
func (m *MetricsFetcher) Fetch(ctx context.Context, ids []string, kind domain.Kind) (map[string]domain.MetricsRow, error) {
	out := make(map[string]domain.MetricsRow, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	switch kind {
	case domain.KindLegislator:
		rows, err := m.Source.LegislatorMetrics(ctx, ids)
		if err != nil {
			return nil, fetchFailed("fetch metrics", kind, ids, err)
		}
		for i := range rows {
			if err := rows[i].Validate(); err != nil {
				return nil, fetchFailed("fetch metrics", kind, ids, err)
			}
			out[rows[i].LegislatorID] = domain.MetricsRow{Legislator: &rows[i]}
		}

	case domain.KindCandidate:
		rows, err := m.Source.CandidateMetrics(ctx, ids)
		if err != nil {
			return nil, fetchFailed("fetch metrics", kind, ids, err)
		}
		for i := range rows {
			if err := rows[i].Validate(); err != nil {
				return nil, fetchFailed("fetch metrics", kind, ids, err)
			}
			out[rows[i].CandidateID] = domain.MetricsRow{Candidate: &rows[i]}
		}

	default:
		return nil, invalid("mode", "unsupported mode %q", kind)
	}
	return out, nil
}
