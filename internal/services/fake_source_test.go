package services

import (
	"context"
	"sync"

	"github.com/votabienperu/comparador/internal/domain"
)

// ----- Fake source -----

// fakeSource serves rows from in-memory maps and records every call.
type fakeSource struct {
	mu sync.Mutex

	legislators map[string]domain.Legislator
	candidates  map[string]domain.Candidate
	legMetrics  map[string]domain.LegislatorMetrics
	candMetrics map[string]domain.CandidateMetrics

	resolveErr error
	metricsErr error
	searchErr  error

	resolveCalls [][]string
	metricsCalls [][]string
	filters      []domain.Filters
	searchCalls  []string
	searchLimits []int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		legislators: map[string]domain.Legislator{},
		candidates:  map[string]domain.Candidate{},
		legMetrics:  map[string]domain.LegislatorMetrics{},
		candMetrics: map[string]domain.CandidateMetrics{},
	}
}

func (f *fakeSource) LegislatorsByIDs(_ context.Context, ids []string, flt domain.Filters) ([]domain.Legislator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveCalls = append(f.resolveCalls, append([]string(nil), ids...))
	f.filters = append(f.filters, flt)
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	var out []domain.Legislator
	// reverse order: callers must not rely on row order
	for i := len(ids) - 1; i >= 0; i-- {
		l, ok := f.legislators[ids[i]]
		if !ok {
			continue
		}
		if flt.Chamber != "" && l.Chamber != flt.Chamber {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeSource) CandidatesByIDs(_ context.Context, ids []string, flt domain.Filters) ([]domain.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveCalls = append(f.resolveCalls, append([]string(nil), ids...))
	f.filters = append(f.filters, flt)
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	var out []domain.Candidate
	for _, id := range ids {
		if c, ok := f.candidates[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeSource) LegislatorMetrics(_ context.Context, ids []string) ([]domain.LegislatorMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metricsCalls = append(f.metricsCalls, append([]string(nil), ids...))
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	var out []domain.LegislatorMetrics
	for _, id := range ids {
		if m, ok := f.legMetrics[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSource) CandidateMetrics(_ context.Context, ids []string) ([]domain.CandidateMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metricsCalls = append(f.metricsCalls, append([]string(nil), ids...))
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}
	var out []domain.CandidateMetrics
	for _, id := range ids {
		if m, ok := f.candMetrics[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeSource) SearchLegislators(_ context.Context, q string, limit int) ([]domain.Legislator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, "legislator:"+q)
	f.searchLimits = append(f.searchLimits, limit)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []domain.Legislator
	for _, l := range f.legislators {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeSource) SearchCandidates(_ context.Context, q string, limit int) ([]domain.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, "candidate:"+q)
	f.searchLimits = append(f.searchLimits, limit)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []domain.Candidate
	for _, c := range f.candidates {
		out = append(out, c)
	}
	return out, nil
}

// ----- Fixtures -----

func intp(i int) *int { return &i }

func legislator(id, name string) domain.Legislator {
	return domain.Legislator{
		ID:         id,
		PersonID:   "P-" + id,
		Chamber:    domain.ChamberCongress,
		Condition:  domain.ConditionActive,
		Active:     true,
		DistrictID: "D1",
		Person:     &domain.Person{ID: "P-" + id, FullName: name},
		District:   &domain.District{ID: "D1", Name: "Lima"},
	}
}

func candidate(id, name string) domain.Candidate {
	return domain.Candidate{
		ID:        id,
		ProcessID: "EG2026",
		PartyID:   "PT1",
		PersonID:  "P-" + id,
		Type:      domain.CandidacySenator,
		Person:    &domain.Person{ID: "P-" + id, FullName: name},
		Party:     &domain.Party{ID: "PT1", Name: "Partido Uno", Acronym: "PU"},
	}
}

func legMetrics(id string) domain.LegislatorMetrics {
	return domain.LegislatorMetrics{
		LegislatorID:    id,
		BillsPresentado: intp(3),
		BillsEnComision: intp(2),
		BillsAprobado:   intp(4),
	}
}
