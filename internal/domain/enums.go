package domain

import "strings"

// Kind selects which entity family a comparison or search operates on.
type Kind string

const (
	KindLegislator Kind = "legislator"
	KindCandidate  Kind = "candidate"
	// KindAll is accepted by search only.
	KindAll Kind = "all"
)

// ParseKind normalizes s (case/whitespace-insensitive) into a Kind. The
// second return is false for unknown values.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLegislator, KindCandidate, KindAll:
		return k, true
	default:
		return "", false
	}
}

// Comparable reports whether k can be used as a comparison mode.
func (k Kind) Comparable() bool { return k == KindLegislator || k == KindCandidate }

// Chamber is the legislative body a seat belongs to.
type Chamber string

const (
	ChamberCongress Chamber = "congress"
	ChamberSenate   Chamber = "senate"
	ChamberDeputies Chamber = "deputies"
)

func (c Chamber) Valid() bool {
	switch c {
	case ChamberCongress, ChamberSenate, ChamberDeputies:
		return true
	}
	return false
}

// Condition is the current standing of a legislator in office.
type Condition string

const (
	ConditionActive    Condition = "active"
	ConditionLeave     Condition = "leave"
	ConditionSuspended Condition = "suspended"
	ConditionRemoved   Condition = "removed"
	ConditionDeceased  Condition = "deceased"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionActive, ConditionLeave, ConditionSuspended, ConditionRemoved, ConditionDeceased:
		return true
	}
	return false
}

// CandidacyType is the office a candidacy runs for.
type CandidacyType string

const (
	CandidacyPresident     CandidacyType = "president"
	CandidacyVicePresident CandidacyType = "vice_president"
	CandidacySenator       CandidacyType = "senator"
	CandidacyDeputy        CandidacyType = "deputy"
)

func (t CandidacyType) Valid() bool {
	switch t {
	case CandidacyPresident, CandidacyVicePresident, CandidacySenator, CandidacyDeputy:
		return true
	}
	return false
}
