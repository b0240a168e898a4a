package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/votabienperu/comparador/internal/domain"
)

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.FixedZone("PET", -5*3600))

func resolvedLeg(id, name string) domain.ResolvedEntity {
	l := legislator(id, name)
	return domain.ResolvedEntity{Legislator: &l}
}

func TestAssemble_StatusesAndOrder(t *testing.T) {
	m1 := legMetrics("L1")
	resolved := []domain.ResolvedEntity{resolvedLeg("L3", "Rosa Ruiz"), resolvedLeg("L1", "Ana Torres")}
	metrics := map[string]domain.MetricsRow{"L1": {Legislator: &m1}}

	resp := Assemble([]string{"L1", "UNKNOWN", "L3", "L1"}, resolved, metrics, fixedNow)

	if resp.TotalRequested != 3 || len(resp.Items) != 3 {
		t.Fatalf("total_requested=%d items=%d; want 3/3", resp.TotalRequested, len(resp.Items))
	}
	if resp.TotalAvailable != 1 {
		t.Fatalf("total_available = %d; want 1", resp.TotalAvailable)
	}
	if resp.ComparisonDate != "2026-10-19T20:04:05Z" {
		t.Fatalf("comparison_date = %q", resp.ComparisonDate)
	}

	gotOrder := []string{resp.Items[0].EntityID, resp.Items[1].EntityID, resp.Items[2].EntityID}
	if !reflect.DeepEqual(gotOrder, []string{"L1", "UNKNOWN", "L3"}) {
		t.Fatalf("order = %v", gotOrder)
	}

	avail := resp.Items[0]
	if avail.Status != domain.StatusAvailable || avail.Data == nil || avail.Message != nil {
		t.Fatalf("available item = %+v", avail)
	}
	if *avail.EntityName != "Ana Torres" || avail.Data.Metrics.Bills.InProgress != 5 {
		t.Fatalf("available data = %+v", avail.Data)
	}

	nf := resp.Items[1]
	if nf.Status != domain.StatusNotFound || nf.EntityName != nil || nf.Data != nil || *nf.Message != domain.MessageNotFound {
		t.Fatalf("not_found item = %+v", nf)
	}

	nm := resp.Items[2]
	if nm.Status != domain.StatusNoMetrics || nm.EntityName == nil || *nm.EntityName != "Rosa Ruiz" || nm.Data != nil || *nm.Message != domain.MessageNoMetrics {
		t.Fatalf("no_metrics item = %+v", nm)
	}
}

func TestAssemble_Invariants(t *testing.T) {
	m := legMetrics("A")
	resolved := []domain.ResolvedEntity{resolvedLeg("A", "A A"), resolvedLeg("B", "B B")}
	metrics := map[string]domain.MetricsRow{"A": {Legislator: &m}}

	for _, ids := range [][]string{
		{"A", "B"}, {"A", "A"}, {"X", "Y"}, {"B", "A", "X", "B"}, {"A", "B", "C", "D"},
	} {
		resp := Assemble(ids, resolved, metrics, fixedNow)
		if len(resp.Items) != resp.TotalRequested || resp.TotalRequested != len(DedupeIDs(ids)) {
			t.Errorf("%v: len(items)=%d total_requested=%d", ids, len(resp.Items), resp.TotalRequested)
		}
		avail := 0
		for _, it := range resp.Items {
			if (it.Status == domain.StatusAvailable) != (it.Data != nil) {
				t.Errorf("%v: status/data mismatch on %+v", ids, it)
			}
			if it.Status == domain.StatusNotFound && it.EntityName != nil {
				t.Errorf("%v: not_found with name", ids)
			}
			if it.Status == domain.StatusAvailable {
				avail++
			}
		}
		if avail != resp.TotalAvailable {
			t.Errorf("%v: total_available=%d counted=%d", ids, resp.TotalAvailable, avail)
		}
	}
}

func TestAssemble_Empty(t *testing.T) {
	resp := Assemble(nil, nil, nil, fixedNow)
	if resp.TotalRequested != 0 || resp.Items == nil || len(resp.Items) != 0 {
		t.Fatalf("empty assemble = %+v", resp)
	}
}
