package domain

import "time"

// LegislatorMetrics is the precomputed aggregate row for one legislator.
// Counters are nullable: the job that fills the table may not have every
// source yet. A missing row is a valid state, not an error.
type LegislatorMetrics struct {
	LegislatorID          string     `json:"legislator_id"            yaml:"legislator_id" gorm:"type:varchar(64);primaryKey"`
	SessionsTotal         *int       `json:"sessions_total"           yaml:"sessions_total"`
	SessionsAttended      *int       `json:"sessions_attended"        yaml:"sessions_attended"`
	AttendanceRate        *float64   `json:"attendance_rate"          yaml:"attendance_rate"`
	BillsTotal            *int       `json:"bills_total"              yaml:"bills_total"`
	BillsPresentado       *int       `json:"bills_presentado"         yaml:"bills_presentado"`
	BillsEnComision       *int       `json:"bills_en_comision"        yaml:"bills_en_comision"`
	BillsAprobado         *int       `json:"bills_aprobado"           yaml:"bills_aprobado"`
	BillsRechazado        *int       `json:"bills_rechazado"          yaml:"bills_rechazado"`
	BillsAlArchivo        *int       `json:"bills_al_archivo"         yaml:"bills_al_archivo"`
	BillsDecretoArchivo   *int       `json:"bills_decreto_archivo"    yaml:"bills_decreto_archivo"`
	BillsRetiradoPorAutor *int       `json:"bills_retirado_por_autor" yaml:"bills_retirado_por_autor"`
	PartyChanges          *int       `json:"party_changes"            yaml:"party_changes"`
	GroupChanges          *int       `json:"group_changes"            yaml:"group_changes"`
	LegalRecords          *int       `json:"legal_records"            yaml:"legal_records"`
	EthicsRecords         *int       `json:"ethics_records"           yaml:"ethics_records"`
	ComputedAt            *time.Time `json:"computed_at"              yaml:"computed_at"`
}

func (LegislatorMetrics) TableName() string { return "legislator_metrics" }

func (m *LegislatorMetrics) Validate() error {
	const table = "legislator_metrics"
	if m.LegislatorID == "" {
		return malformed(table, "", "empty legislator_id")
	}
	for name, v := range map[string]*int{
		"sessions_total":           m.SessionsTotal,
		"sessions_attended":        m.SessionsAttended,
		"bills_total":              m.BillsTotal,
		"bills_presentado":         m.BillsPresentado,
		"bills_en_comision":        m.BillsEnComision,
		"bills_aprobado":           m.BillsAprobado,
		"bills_rechazado":          m.BillsRechazado,
		"bills_al_archivo":         m.BillsAlArchivo,
		"bills_decreto_archivo":    m.BillsDecretoArchivo,
		"bills_retirado_por_autor": m.BillsRetiradoPorAutor,
		"party_changes":            m.PartyChanges,
		"group_changes":            m.GroupChanges,
		"legal_records":            m.LegalRecords,
		"ethics_records":           m.EthicsRecords,
	} {
		if v != nil && *v < 0 {
			return malformed(table, m.LegislatorID, "negative %s", name)
		}
	}
	if r := m.AttendanceRate; r != nil && (*r < 0 || *r > 1) {
		return malformed(table, m.LegislatorID, "attendance_rate %v outside [0,1]", *r)
	}
	return nil
}

// CandidateMetrics is the precomputed aggregate row for one candidacy.
type CandidateMetrics struct {
	CandidateID         string     `json:"candidate_id"         yaml:"candidate_id" gorm:"type:varchar(64);primaryKey"`
	PreviousCandidacies *int       `json:"previous_candidacies" yaml:"previous_candidacies"`
	TimesElected        *int       `json:"times_elected"        yaml:"times_elected"`
	PartyChanges        *int       `json:"party_changes"        yaml:"party_changes"`
	LegalRecords        *int       `json:"legal_records"        yaml:"legal_records"`
	EthicsRecords       *int       `json:"ethics_records"       yaml:"ethics_records"`
	Sentences           *int       `json:"sentences"            yaml:"sentences"`
	DeclaredAssets      *float64   `json:"declared_assets"      yaml:"declared_assets"`
	ComputedAt          *time.Time `json:"computed_at"          yaml:"computed_at"`
}

func (CandidateMetrics) TableName() string { return "candidate_metrics" }

func (m *CandidateMetrics) Validate() error {
	const table = "candidate_metrics"
	if m.CandidateID == "" {
		return malformed(table, "", "empty candidate_id")
	}
	for name, v := range map[string]*int{
		"previous_candidacies": m.PreviousCandidacies,
		"times_elected":        m.TimesElected,
		"party_changes":        m.PartyChanges,
		"legal_records":        m.LegalRecords,
		"ethics_records":       m.EthicsRecords,
		"sentences":            m.Sentences,
	} {
		if v != nil && *v < 0 {
			return malformed(table, m.CandidateID, "negative %s", name)
		}
	}
	if a := m.DeclaredAssets; a != nil && *a < 0 {
		return malformed(table, m.CandidateID, "negative declared_assets")
	}
	return nil
}

// MetricsRow is the raw metrics of one entity, exactly one side set.
type MetricsRow struct {
	Legislator *LegislatorMetrics
	Candidate  *CandidateMetrics
}

// EntityID returns the id of whichever side is set.
func (r MetricsRow) EntityID() string {
	switch {
	case r.Legislator != nil:
		return r.Legislator.LegislatorID
	case r.Candidate != nil:
		return r.Candidate.CandidateID
	}
	return ""
}

// BillMetrics groups raw per-status bill counters with the derived buckets.
type BillMetrics struct {
	Total            int `json:"total"`
	Presentado       int `json:"presentado"`
	EnComision       int `json:"en_comision"`
	Aprobado         int `json:"aprobado"`
	Rechazado        int `json:"rechazado"`
	AlArchivo        int `json:"al_archivo"`
	DecretoArchivo   int `json:"decreto_archivo"`
	RetiradoPorAutor int `json:"retirado_por_autor"`

	InProgress int `json:"in_progress"`
	Finished   int `json:"finished"`
	Rejected   int `json:"rejected"`
}

// AttendanceMetrics keeps Rate nil when no session was recorded: a zero rate
// means "attended none", nil means "unknown".
type AttendanceMetrics struct {
	SessionsTotal    int      `json:"sessions_total"`
	SessionsAttended int      `json:"sessions_attended"`
	Rate             *float64 `json:"rate"`
}

type CandidacyMetrics struct {
	PreviousCandidacies int      `json:"previous_candidacies"`
	TimesElected        int      `json:"times_elected"`
	Sentences           int      `json:"sentences"`
	DeclaredAssets      *float64 `json:"declared_assets"`
}

// NormalizedMetrics is a metrics row with nulls resolved and derived fields
// computed. Attendance and Bills are set for legislators, Candidacy for
// candidates.
type NormalizedMetrics struct {
	EntityID       string             `json:"entity_id"`
	PartyChanges   int                `json:"party_changes"`
	GroupChanges   int                `json:"group_changes"`
	LegalRecords   int                `json:"legal_records"`
	EthicsRecords  int                `json:"ethics_records"`
	IntegrityFlags int                `json:"integrity_flags"`
	StabilityIndex float64            `json:"stability_index"`
	Attendance     *AttendanceMetrics `json:"attendance,omitempty"`
	Bills          *BillMetrics       `json:"bills,omitempty"`
	Candidacy      *CandidacyMetrics  `json:"candidacy,omitempty"`
	ComputedAt     *time.Time         `json:"computed_at"`
}
