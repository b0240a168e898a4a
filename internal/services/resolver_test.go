package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/votabienperu/comparador/internal/domain"
)

func TestDedupeIDs(t *testing.T) {
	got := DedupeIDs([]string{" L2", "L1", "L2 ", "", "L1", "L3"})
	if !reflect.DeepEqual(got, []string{"L2", "L1", "L3"}) {
		t.Fatalf("DedupeIDs = %v", got)
	}
}

func TestValidateIDs(t *testing.T) {
	if _, err := ValidateIDs([]string{"L1"}, 2, 4); !errors.Is(err, ErrValidation) {
		t.Fatalf("one id: %v", err)
	}
	if _, err := ValidateIDs([]string{"1", "2", "3", "4", "5"}, 2, 4); !errors.Is(err, ErrValidation) {
		t.Fatalf("five ids: %v", err)
	}
	if _, err := ValidateIDs([]string{"L1", "  "}, 2, 4); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank id: %v", err)
	}

	ids, err := ValidateIDs([]string{"L1", "L1"}, 2, 4)
	if err != nil || !reflect.DeepEqual(ids, []string{"L1"}) {
		t.Fatalf("duplicate pair: %v %v", ids, err)
	}

	var ve *ValidationError
	_, err = ValidateIDs(nil, 2, 4)
	if !errors.As(err, &ve) || ve.Field != "ids" {
		t.Fatalf("expected ValidationError on ids, got %v", err)
	}
}

func TestResolve_MalformedRowIsFetchError(t *testing.T) {
	src := newFakeSource()
	bad := legislator("L1", "Ana")
	bad.Chamber = "house"
	src.legislators["L1"] = bad

	r := &EntityResolver{Source: src}
	_, err := r.Resolve(context.Background(), []string{"L1"}, domain.KindLegislator, domain.Filters{})
	if !errors.Is(err, ErrDataFetch) || !errors.Is(err, domain.ErrMalformedRow) {
		t.Fatalf("expected data fetch error wrapping malformed row, got %v", err)
	}
}

func TestResolve_TransportError(t *testing.T) {
	src := newFakeSource()
	src.resolveErr = errors.New("connection reset")

	r := &EntityResolver{Source: src}
	_, err := r.Resolve(context.Background(), []string{"C1", "C2"}, domain.KindCandidate, domain.Filters{})
	var fe *DataFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *DataFetchError, got %T %v", err, err)
	}
	if fe.Kind != domain.KindCandidate || fe.Op != "resolve" || !reflect.DeepEqual(fe.IDs, []string{"C1", "C2"}) {
		t.Fatalf("fetch error fields = %+v", fe)
	}
	if errors.Unwrap(err).Error() != "connection reset" {
		t.Fatalf("cause not preserved: %v", errors.Unwrap(err))
	}
}

func TestResolve_UnknownKind(t *testing.T) {
	r := &EntityResolver{Source: newFakeSource()}
	if _, err := r.Resolve(context.Background(), []string{"x"}, domain.KindAll, domain.Filters{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMetricsFetcher_NoIDsSkipsStore(t *testing.T) {
	src := newFakeSource()
	m := &MetricsFetcher{Source: src}
	got, err := m.Fetch(context.Background(), nil, domain.KindLegislator)
	if err != nil || len(got) != 0 {
		t.Fatalf("Fetch(nil) = %v, %v", got, err)
	}
	if len(src.metricsCalls) != 0 {
		t.Fatalf("store called with no ids: %v", src.metricsCalls)
	}
}

func TestMetricsFetcher_MalformedRow(t *testing.T) {
	src := newFakeSource()
	src.candMetrics["C1"] = domain.CandidateMetrics{CandidateID: "C1", LegalRecords: intp(-1)}
	m := &MetricsFetcher{Source: src}
	if _, err := m.Fetch(context.Background(), []string{"C1"}, domain.KindCandidate); !errors.Is(err, ErrDataFetch) {
		t.Fatalf("expected data fetch error, got %v", err)
	}
}
