package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/votabienperu/comparador/internal/domain"
)

// legislatorBase preloads the references every legislator read needs.
func legislatorBase(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Preload("Person").
		Preload("Party").
		Preload("District")
}

// FindLegislatorsByIDs returns the legislators among ids that pass f, with
// person, party, district and current parliamentary group attached. Ids with
// no row are absent. Order is unspecified.
func FindLegislatorsByIDs(ctx context.Context, db *gorm.DB, ids []string, f domain.Filters) ([]domain.Legislator, error) {
	out := []domain.Legislator{}
	if len(ids) == 0 {
		return out, nil
	}
	q := legislatorBase(ctx, db).Where("id IN ?", ids)
	if f.Chamber != "" {
		q = q.Where("chamber = ?", f.Chamber)
	}
	if f.DistrictID != "" {
		q = q.Where("district_id = ?", f.DistrictID)
	}
	if f.PartyID != "" {
		q = q.Where("party_id = ?", f.PartyID)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	if err := attachCurrentGroups(ctx, db, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchLegislators matches the folded person name against query and returns
// up to limit rows, most name-relevant first, then active seats.
func SearchLegislators(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Legislator, error) {
	out := []domain.Legislator{}
	q := legislatorBase(ctx, db).
		Scopes(matchPersonName("legislators", query, "legislators.active DESC, legislators.id"))
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, attachCurrentGroups(ctx, db, out)
}

// attachCurrentGroups resolves the open membership (end_date IS NULL) of each
// legislator in one query. When several are open the latest start wins.
func attachCurrentGroups(ctx context.Context, db *gorm.DB, ls []domain.Legislator) error {
	if len(ls) == 0 {
		return nil
	}
	ids := make([]string, len(ls))
	for i := range ls {
		ids[i] = ls[i].ID
	}

	var ms []domain.GroupMembership
	err := db.WithContext(ctx).
		Preload("Group").
		Where("legislator_id IN ? AND end_date IS NULL", ids).
		Order("start_date DESC").
		Find(&ms).Error
	if err != nil {
		return err
	}

	current := make(map[string]*domain.ParliamentaryGroup, len(ms))
	for i := range ms {
		if _, seen := current[ms[i].LegislatorID]; !seen {
			g := ms[i].Group
			current[ms[i].LegislatorID] = &g
		}
	}
	for i := range ls {
		ls[i].CurrentGroup = current[ls[i].ID]
	}
	return nil
}
