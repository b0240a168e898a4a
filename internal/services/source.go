package services

import (
	"context"

	"github.com/votabienperu/comparador/internal/domain"
)

// Source is the relational query collaborator the pipeline reads from. Every
// method is a single batched lookup; an id without a matching row is simply
// absent from the result.
//
// Implementations return rows with related references joined (person, party,
// district, current group for legislators; person, party, district, process
// for candidates). Row order is not significant.
type Source interface {
	LegislatorsByIDs(ctx context.Context, ids []string, f domain.Filters) ([]domain.Legislator, error)
	CandidatesByIDs(ctx context.Context, ids []string, f domain.Filters) ([]domain.Candidate, error)

	LegislatorMetrics(ctx context.Context, ids []string) ([]domain.LegislatorMetrics, error)
	CandidateMetrics(ctx context.Context, ids []string) ([]domain.CandidateMetrics, error)

	// SearchLegislators/SearchCandidates match a folded name substring and
	// return at most limit rows.
	SearchLegislators(ctx context.Context, query string, limit int) ([]domain.Legislator, error)
	SearchCandidates(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}
