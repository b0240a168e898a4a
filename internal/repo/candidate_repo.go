package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/votabienperu/comparador/internal/domain"
)

func candidateBase(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Preload("Person").
		Preload("Party").
		Preload("District").
		Preload("Process")
}

// FindCandidatesByIDs returns the candidacies among ids that pass f with
// their references preloaded. Order is unspecified.
func FindCandidatesByIDs(ctx context.Context, db *gorm.DB, ids []string, f domain.Filters) ([]domain.Candidate, error) {
	out := []domain.Candidate{}
	if len(ids) == 0 {
		return out, nil
	}
	q := candidateBase(ctx, db).Where("id IN ?", ids)
	if f.CandidacyType != "" {
		q = q.Where("type = ?", f.CandidacyType)
	}
	if f.DistrictID != "" {
		q = q.Where("district_id = ?", f.DistrictID)
	}
	if f.PartyID != "" {
		q = q.Where("party_id = ?", f.PartyID)
	}
	if f.ProcessID != "" {
		q = q.Where("process_id = ?", f.ProcessID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchCandidates matches the folded person name against query, most
// name-relevant first, then elected candidacies.
func SearchCandidates(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Candidate, error) {
	out := []domain.Candidate{}
	q := candidateBase(ctx, db).
		Scopes(matchPersonName("candidates", query, "candidates.elected DESC, candidates.id"))
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
