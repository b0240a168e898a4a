package services

import "github.com/votabienperu/comparador/internal/domain"

// Normalize resolves nulls and computes derived fields of a raw metrics row.
// It is pure and total: an empty row yields zero counters and a nil rate.
//
// Derived fields:
//
//	bills.in_progress = presentado + en_comision
//	bills.finished    = aprobado
//	bills.rejected    = rechazado + al_archivo + decreto_archivo + retirado_por_autor
//	integrity_flags   = legal_records + ethics_records (+ sentences for candidates)
//	stability_index   = 1 / (1 + party_changes + group_changes)
//
// Counters default to 0; rates stay nil when unknown.
func Normalize(raw domain.MetricsRow) domain.NormalizedMetrics {
	switch {
	case raw.Legislator != nil:
		return normalizeLegislator(raw.Legislator)
	case raw.Candidate != nil:
		return normalizeCandidate(raw.Candidate)
	}
	return domain.NormalizedMetrics{StabilityIndex: 1}
}

func normalizeLegislator(m *domain.LegislatorMetrics) domain.NormalizedMetrics {
	bills := domain.BillMetrics{
		Total:            val(m.BillsTotal),
		Presentado:       val(m.BillsPresentado),
		EnComision:       val(m.BillsEnComision),
		Aprobado:         val(m.BillsAprobado),
		Rechazado:        val(m.BillsRechazado),
		AlArchivo:        val(m.BillsAlArchivo),
		DecretoArchivo:   val(m.BillsDecretoArchivo),
		RetiradoPorAutor: val(m.BillsRetiradoPorAutor),
	}
	bills.InProgress = bills.Presentado + bills.EnComision
	bills.Finished = bills.Aprobado
	bills.Rejected = bills.Rechazado + bills.AlArchivo + bills.DecretoArchivo + bills.RetiradoPorAutor

	att := domain.AttendanceMetrics{
		SessionsTotal:    val(m.SessionsTotal),
		SessionsAttended: val(m.SessionsAttended),
		Rate:             attendanceRate(m),
	}

	n := domain.NormalizedMetrics{
		EntityID:      m.LegislatorID,
		PartyChanges:  val(m.PartyChanges),
		GroupChanges:  val(m.GroupChanges),
		LegalRecords:  val(m.LegalRecords),
		EthicsRecords: val(m.EthicsRecords),
		Attendance:    &att,
		Bills:         &bills,
		ComputedAt:    m.ComputedAt,
	}
	n.IntegrityFlags = n.LegalRecords + n.EthicsRecords
	n.StabilityIndex = stability(n.PartyChanges, n.GroupChanges)
	return n
}

func normalizeCandidate(m *domain.CandidateMetrics) domain.NormalizedMetrics {
	c := domain.CandidacyMetrics{
		PreviousCandidacies: val(m.PreviousCandidacies),
		TimesElected:        val(m.TimesElected),
		Sentences:           val(m.Sentences),
		DeclaredAssets:      m.DeclaredAssets,
	}
	n := domain.NormalizedMetrics{
		EntityID:      m.CandidateID,
		PartyChanges:  val(m.PartyChanges),
		LegalRecords:  val(m.LegalRecords),
		EthicsRecords: val(m.EthicsRecords),
		Candidacy:     &c,
		ComputedAt:    m.ComputedAt,
	}
	n.IntegrityFlags = n.LegalRecords + n.EthicsRecords + c.Sentences
	n.StabilityIndex = stability(n.PartyChanges, 0)
	return n
}

// attendanceRate prefers the stored rate and otherwise derives it from the
// session counters. No recorded session means unknown, not zero.
func attendanceRate(m *domain.LegislatorMetrics) *float64 {
	if m.AttendanceRate != nil {
		r := *m.AttendanceRate
		return &r
	}
	total := val(m.SessionsTotal)
	if total <= 0 || m.SessionsAttended == nil {
		return nil
	}
	r := float64(*m.SessionsAttended) / float64(total)
	if r > 1 {
		r = 1
	}
	return &r
}

func stability(changes ...int) float64 {
	sum := 0
	for _, c := range changes {
		sum += c
	}
	return 1 / float64(1+sum)
}

func val(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
