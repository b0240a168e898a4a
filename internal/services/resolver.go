package services

import (
	"context"
	"strings"

	"github.com/votabienperu/comparador/internal/domain"
)

const (
	DefaultMinIDs = 2
	DefaultMaxIDs = 4
)

// EntityResolver fetches base records for a set of ids in one batched lookup.
type EntityResolver struct {
	Source Source
}

// ValidateIDs checks the request shape and returns the de-duplicated ids in
// first-seen order. The count bound applies to the ids as sent; duplicates
// are collapsed afterwards.
func ValidateIDs(ids []string, minIDs, maxIDs int) ([]string, error) {
	if len(ids) < minIDs {
		return nil, invalid("ids", "at least %d ids are required, got %d", minIDs, len(ids))
	}
	if len(ids) > maxIDs {
		return nil, invalid("ids", "at most %d ids are allowed, got %d", maxIDs, len(ids))
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, invalid("ids", "id at position %d is blank", i)
		}
	}
	return DedupeIDs(ids), nil
}

// DedupeIDs trims ids and drops repeats, keeping the first occurrence.
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Resolve fetches ids of the given kind. It is all-or-nothing: any transport
// error or malformed row fails the call with *DataFetchError. Ids without a
// row are absent from the result. Order is not guaranteed.
func (r *EntityResolver) Resolve(ctx context.Context, ids []string, kind domain.Kind, f domain.Filters) ([]domain.ResolvedEntity, error) {
	switch kind {
	case domain.KindLegislator:
		rows, err := r.Source.LegislatorsByIDs(ctx, ids, f)
		if err != nil {
			return nil, fetchFailed("resolve", kind, ids, err)
		}
		out := make([]domain.ResolvedEntity, 0, len(rows))
		for i := range rows {
			if err := rows[i].Validate(); err != nil {
				return nil, fetchFailed("resolve", kind, ids, err)
			}
			out = append(out, domain.ResolvedEntity{Legislator: &rows[i]})
		}
		return out, nil

	case domain.KindCandidate:
		rows, err := r.Source.CandidatesByIDs(ctx, ids, f)
		if err != nil {
			return nil, fetchFailed("resolve", kind, ids, err)
		}
		out := make([]domain.ResolvedEntity, 0, len(rows))
		for i := range rows {
			if err := rows[i].Validate(); err != nil {
				return nil, fetchFailed("resolve", kind, ids, err)
			}
			out = append(out, domain.ResolvedEntity{Candidate: &rows[i]})
		}
		return out, nil

	default:
		return nil, invalid("mode", "unsupported mode %q", kind)
	}
}
