package services

import (
	"time"

	"github.com/votabienperu/comparador/internal/domain"
)

// Assemble merges resolved entities with their metrics into the comparison
// view. Items follow the de-duplicated order of requestedIDs; per-item
// absence is reported through the item status and never as an error.
func Assemble(requestedIDs []string, resolved []domain.ResolvedEntity, metricsByID map[string]domain.MetricsRow, now time.Time) domain.ComparisonResponse {
	byID := make(map[string]domain.ResolvedEntity, len(resolved))
	for _, e := range resolved {
		byID[e.ID()] = e
	}

	ids := DedupeIDs(requestedIDs)
	resp := domain.ComparisonResponse{
		TotalRequested: len(ids),
		ComparisonDate: now.UTC().Format(time.RFC3339),
		Items:          make([]domain.ComparisonItem, 0, len(ids)),
	}

	for _, id := range ids {
		entity, found := byID[id]
		if !found {
			resp.Items = append(resp.Items, domain.ComparisonItem{
				EntityID: id,
				Status:   domain.StatusNotFound,
				Message:  ptr(domain.MessageNotFound),
			})
			continue
		}

		name := entity.DisplayName()
		raw, hasMetrics := metricsByID[id]
		if !hasMetrics {
			resp.Items = append(resp.Items, domain.ComparisonItem{
				EntityID:   id,
				EntityName: ptr(name),
				Status:     domain.StatusNoMetrics,
				Message:    ptr(domain.MessageNoMetrics),
			})
			continue
		}

		resp.Items = append(resp.Items, domain.ComparisonItem{
			EntityID:   id,
			EntityName: ptr(name),
			Status:     domain.StatusAvailable,
			Data: &domain.ComparisonData{
				Entity:  entity,
				Metrics: Normalize(raw),
			},
		})
		resp.TotalAvailable++
	}
	return resp
}

func ptr[T any](v T) *T { return &v }
