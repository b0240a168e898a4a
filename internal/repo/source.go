package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/votabienperu/comparador/internal/domain"
)

// Source adapts the repository functions to the comparison pipeline's data
// source contract, keeping services decoupled from GORM.
type Source struct {
	DB *gorm.DB
}

func NewSource(db *gorm.DB) *Source { return &Source{DB: db} }

func (s *Source) LegislatorsByIDs(ctx context.Context, ids []string, f domain.Filters) ([]domain.Legislator, error) {
	return FindLegislatorsByIDs(ctx, s.DB, ids, f)
}

func (s *Source) CandidatesByIDs(ctx context.Context, ids []string, f domain.Filters) ([]domain.Candidate, error) {
	return FindCandidatesByIDs(ctx, s.DB, ids, f)
}

func (s *Source) LegislatorMetrics(ctx context.Context, ids []string) ([]domain.LegislatorMetrics, error) {
	return FindLegislatorMetrics(ctx, s.DB, ids)
}

func (s *Source) CandidateMetrics(ctx context.Context, ids []string) ([]domain.CandidateMetrics, error) {
	return FindCandidateMetrics(ctx, s.DB, ids)
}

func (s *Source) SearchLegislators(ctx context.Context, query string, limit int) ([]domain.Legislator, error) {
	return SearchLegislators(ctx, s.DB, query, limit)
}

func (s *Source) SearchCandidates(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	return SearchCandidates(ctx, s.DB, query, limit)
}

// Ping checks connectivity for the health endpoint.
func (s *Source) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
