package domain

import (
	"encoding/json"
	"strings"
)

// Filters narrows the entity lookup. Empty fields do not filter. Each kind
// honors only the fields that apply to it.
type Filters struct {
	Chamber       Chamber       `json:"chamber,omitempty"`        // legislators
	DistrictID    string        `json:"district_id,omitempty"`    // both
	PartyID       string        `json:"party_id,omitempty"`       // both
	CandidacyType CandidacyType `json:"candidacy_type,omitempty"` // candidates
	ProcessID     string        `json:"process_id,omitempty"`     // candidates
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool { return f == Filters{} }

// ComparisonRequest is the parameter bag handed over by the transport layer.
type ComparisonRequest struct {
	Mode    Kind     `json:"mode"`
	IDs     []string `json:"ids"`
	Filters Filters  `json:"filters"`
}

// ResolvedEntity is a fetched legislator or candidate with its related
// references inlined. It serializes as the underlying row.
type ResolvedEntity struct {
	Legislator *Legislator
	Candidate  *Candidate
}

func (e ResolvedEntity) ID() string {
	switch {
	case e.Legislator != nil:
		return e.Legislator.ID
	case e.Candidate != nil:
		return e.Candidate.ID
	}
	return ""
}

func (e ResolvedEntity) Kind() Kind {
	if e.Candidate != nil {
		return KindCandidate
	}
	return KindLegislator
}

// DisplayName is the owning person's name.
func (e ResolvedEntity) DisplayName() string {
	switch {
	case e.Legislator != nil:
		return e.Legislator.Person.DisplayName()
	case e.Candidate != nil:
		return e.Candidate.Person.DisplayName()
	}
	return ""
}

func (e ResolvedEntity) MarshalJSON() ([]byte, error) {
	switch {
	case e.Legislator != nil:
		return json.Marshal(e.Legislator)
	case e.Candidate != nil:
		return json.Marshal(e.Candidate)
	}
	return []byte("null"), nil
}

// ComparisonStatus is the per-item outcome of a comparison.
type ComparisonStatus string

const (
	StatusAvailable ComparisonStatus = "available"
	StatusNoMetrics ComparisonStatus = "no_metrics"
	StatusNotFound  ComparisonStatus = "not_found"
)

const (
	MessageNotFound  = "entity not found"
	MessageNoMetrics = "metrics not yet computed"
)

type ComparisonData struct {
	Entity  ResolvedEntity    `json:"entity"`
	Metrics NormalizedMetrics `json:"metrics"`
}

// ComparisonItem is one requested id's outcome.
//
// Invariants:
//   - not_found  ⇒ EntityName == nil && Data == nil
//   - no_metrics ⇒ EntityName != nil && Data == nil
//   - available  ⇒ Data != nil
type ComparisonItem struct {
	EntityID   string           `json:"entity_id"`
	EntityName *string          `json:"entity_name"`
	Status     ComparisonStatus `json:"status"`
	Message    *string          `json:"message"`
	Data       *ComparisonData  `json:"data"`
}

// ComparisonResponse is the denormalized comparison view. Items follow the
// de-duplicated request order.
type ComparisonResponse struct {
	TotalRequested int              `json:"total_requested"`
	TotalAvailable int              `json:"total_available"`
	ComparisonDate string           `json:"comparison_date"`
	Items          []ComparisonItem `json:"items"`
}

// SearchableEntity is the reduced projection used to fill comparison slots.
type SearchableEntity struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
}

// SearchableFromLegislator projects l; descriptor is "<party> · <district>".
func SearchableFromLegislator(l *Legislator) SearchableEntity {
	var parts []string
	if l.Party != nil {
		parts = append(parts, firstNonBlank(l.Party.Acronym, l.Party.Name))
	}
	if l.District != nil {
		parts = append(parts, l.District.Name)
	}
	return SearchableEntity{
		ID:          l.ID,
		Kind:        KindLegislator,
		Name:        l.Person.DisplayName(),
		ImageURL:    personImage(l.Person),
		Description: joinNonBlank(parts, " · "),
	}
}

// SearchableFromCandidate projects c; descriptor is "<type> · <party>".
func SearchableFromCandidate(c *Candidate) SearchableEntity {
	parts := []string{string(c.Type)}
	if c.Party != nil {
		parts = append(parts, firstNonBlank(c.Party.Acronym, c.Party.Name))
	}
	return SearchableEntity{
		ID:          c.ID,
		Kind:        KindCandidate,
		Name:        c.Person.DisplayName(),
		ImageURL:    personImage(c.Person),
		Description: joinNonBlank(parts, " · "),
	}
}

func personImage(p *Person) string {
	if p == nil {
		return ""
	}
	return p.ImageURL
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func joinNonBlank(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
