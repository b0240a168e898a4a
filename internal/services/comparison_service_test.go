package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/votabienperu/comparador/internal/domain"
)

func newTestComparison(src Source) *ComparisonService {
	s := NewComparisonService(src)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func seededSource() *fakeSource {
	src := newFakeSource()
	src.legislators["L1"] = legislator("L1", "Ana Torres")
	src.legislators["L2"] = legislator("L2", "Luis Quispe")
	src.legislators["L3"] = legislator("L3", "Rosa Ruiz")
	src.legMetrics["L1"] = legMetrics("L1")
	src.legMetrics["L2"] = legMetrics("L2")
	return src
}

func TestNewComparisonService_Defaults(t *testing.T) {
	s := NewComparisonService(newFakeSource())
	if s.MinIDs != 2 || s.MaxIDs != 4 || s.Now == nil || s.Resolver == nil || s.Metrics == nil {
		t.Fatalf("defaults not applied: %+v", s)
	}
}

func TestCompare_ScenarioA_AllAvailable(t *testing.T) {
	s := newTestComparison(seededSource())
	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L2"}})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if resp.TotalRequested != 2 || resp.TotalAvailable != 2 {
		t.Fatalf("totals = %d/%d; want 2/2", resp.TotalRequested, resp.TotalAvailable)
	}
	for _, it := range resp.Items {
		if it.Status != domain.StatusAvailable {
			t.Fatalf("item %s status = %s", it.EntityID, it.Status)
		}
	}
	if resp.Items[0].EntityID != "L1" || resp.Items[1].EntityID != "L2" {
		t.Fatalf("order follows store, not request: %v, %v", resp.Items[0].EntityID, resp.Items[1].EntityID)
	}
}

func TestCompare_ScenarioB_DuplicateCollapsed(t *testing.T) {
	src := seededSource()
	s := newTestComparison(src)
	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L1"}})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if resp.TotalRequested != 1 || len(resp.Items) != 1 {
		t.Fatalf("total_requested=%d items=%d; want 1/1", resp.TotalRequested, len(resp.Items))
	}
	if !reflect.DeepEqual(src.resolveCalls, [][]string{{"L1"}}) {
		t.Fatalf("resolver queried with %v; want de-duplicated ids", src.resolveCalls)
	}
}

func TestCompare_ScenarioC_NotFound(t *testing.T) {
	src := seededSource()
	s := newTestComparison(src)
	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "UNKNOWN"}})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	it := resp.Items[1]
	if it.EntityID != "UNKNOWN" || it.Status != domain.StatusNotFound || it.EntityName != nil || it.Data != nil {
		t.Fatalf("unknown item = %+v", it)
	}
	if resp.TotalAvailable != 1 {
		t.Fatalf("total_available = %d; want 1", resp.TotalAvailable)
	}
	// metrics only for ids that resolved
	if !reflect.DeepEqual(src.metricsCalls, [][]string{{"L1"}}) {
		t.Fatalf("metrics queried with %v; want [[L1]]", src.metricsCalls)
	}
}

func TestCompare_ScenarioD_BelowMinimumRejectedBeforeFetch(t *testing.T) {
	src := seededSource()
	s := newTestComparison(src)
	_, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(src.resolveCalls) != 0 || len(src.metricsCalls) != 0 {
		t.Fatalf("fetch happened before validation: %v %v", src.resolveCalls, src.metricsCalls)
	}
}

func TestCompare_ScenarioE_NoMetrics(t *testing.T) {
	s := newTestComparison(seededSource())
	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L3"}})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	it := resp.Items[1]
	if it.Status != domain.StatusNoMetrics || it.EntityName == nil || *it.EntityName != "Rosa Ruiz" || it.Data != nil {
		t.Fatalf("L3 item = %+v", it)
	}
}

func TestCompare_UnsupportedMode(t *testing.T) {
	src := seededSource()
	s := newTestComparison(src)
	for _, mode := range []domain.Kind{"", "party", domain.KindAll} {
		_, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: mode, IDs: []string{"L1", "L2"}})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "mode" {
			t.Fatalf("mode %q: expected mode ValidationError, got %v", mode, err)
		}
	}
	if len(src.resolveCalls) != 0 {
		t.Fatal("store queried for invalid mode")
	}
}

func TestCompare_AboveMaximum(t *testing.T) {
	s := newTestComparison(seededSource())
	_, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"1", "2", "3", "4", "5"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCompare_FetchErrorsAreFatal(t *testing.T) {
	src := seededSource()
	src.resolveErr = errors.New("timeout")
	s := newTestComparison(src)
	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L2"}})
	if !errors.Is(err, ErrDataFetch) || resp != nil {
		t.Fatalf("resolve failure: resp=%v err=%v", resp, err)
	}
	if len(src.metricsCalls) != 0 {
		t.Fatal("metrics fetched after resolve failure")
	}

	src = seededSource()
	src.metricsErr = errors.New("boom")
	s = newTestComparison(src)
	resp, err = s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L2"}})
	if !errors.Is(err, ErrDataFetch) || resp != nil {
		t.Fatalf("metrics failure: resp=%v err=%v", resp, err)
	}
}

func TestCompare_Idempotent(t *testing.T) {
	src := seededSource()
	s := NewComparisonService(src)
	calls := 0
	s.Now = func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Hour)
	}
	req := domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L3", "X", "L1", "L2"}}

	a, err := s.Compare(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Compare(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if a.ComparisonDate == b.ComparisonDate {
		t.Fatal("clock not consulted per call")
	}
	if !reflect.DeepEqual(a.Items, b.Items) {
		t.Fatal("items differ between identical calls")
	}
}

func TestCompare_FiltersReachResolver(t *testing.T) {
	src := seededSource()
	senator := legislator("S1", "Senadora")
	senator.Chamber = domain.ChamberSenate
	src.legislators["S1"] = senator
	s := newTestComparison(src)

	f := domain.Filters{Chamber: domain.ChamberCongress}
	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "S1"}, Filters: f})
	if err != nil {
		t.Fatal(err)
	}
	if src.filters[0] != f {
		t.Fatalf("filters = %+v", src.filters[0])
	}
	if resp.Items[1].Status != domain.StatusNotFound {
		t.Fatalf("filtered-out id status = %s; want not_found", resp.Items[1].Status)
	}
}

func TestCompare_Candidates(t *testing.T) {
	src := newFakeSource()
	src.candidates["C1"] = candidate("C1", "Keiko")
	src.candidates["C2"] = candidate("C2", "Rafael")
	src.candMetrics["C2"] = domain.CandidateMetrics{CandidateID: "C2", LegalRecords: intp(2)}
	s := newTestComparison(src)

	resp, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindCandidate, IDs: []string{"C1", "C2", "C9"}})
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.ComparisonStatus{domain.StatusNoMetrics, domain.StatusAvailable, domain.StatusNotFound}
	for i, it := range resp.Items {
		if it.Status != want[i] {
			t.Fatalf("item %d status = %s; want %s", i, it.Status, want[i])
		}
	}
	if resp.Items[1].Data.Metrics.Candidacy == nil || resp.Items[1].Data.Metrics.IntegrityFlags != 2 {
		t.Fatalf("candidate metrics = %+v", resp.Items[1].Data.Metrics)
	}
}

func TestCompare_CustomBounds(t *testing.T) {
	s := newTestComparison(seededSource())
	s.MinIDs, s.MaxIDs = 3, 3
	if _, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L2"}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected bound violation, got %v", err)
	}
	if _, err := s.Compare(context.Background(), domain.ComparisonRequest{Mode: domain.KindLegislator, IDs: []string{"L1", "L2", "L3"}}); err != nil {
		t.Fatalf("3 ids with bounds 3..3: %v", err)
	}
}
