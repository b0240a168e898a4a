package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/votabienperu/comparador/internal/domain"
)

// FindLegislatorMetrics returns the metrics rows of ids in one query.
// Legislators without a row are absent.
func FindLegislatorMetrics(ctx context.Context, db *gorm.DB, ids []string) ([]domain.LegislatorMetrics, error) {
	out := []domain.LegislatorMetrics{}
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).
		Where("legislator_id IN ?", ids).
		Find(&out).Error
	return out, err
}

// FindCandidateMetrics returns the metrics rows of ids in one query.
func FindCandidateMetrics(ctx context.Context, db *gorm.DB, ids []string) ([]domain.CandidateMetrics, error) {
	out := []domain.CandidateMetrics{}
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).
		Where("candidate_id IN ?", ids).
		Find(&out).Error
	return out, err
}
