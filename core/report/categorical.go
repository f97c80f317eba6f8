package report

import "strings"

type (
	categoricalRule struct {
		Value    string
		Keywords []string
	}

	// CategoricalField maps free-form values onto a fixed enumeration via
	// substring heuristics. Mapping is total: missing or unrecognized input
	// falls to the field default (an accepted information loss, not a bug).
	CategoricalField struct {
		Field   string
		Default string
		// Rules are tested in order; the first keyword hit wins, so rule
		// order is the tie-break policy if keyword sets ever overlap.
		Rules []categoricalRule
	}
)

// Map normalizes the raw value and returns its canonical enumeration value.
func (f CategoricalField) Map(raw string) string {
	n := NormalizeKey(raw)
	if n == "" {
		return f.Default
	}
	for _, rule := range f.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(n, kw) {
				return rule.Value
			}
		}
	}
	return f.Default
}

var (
	paymentStatusField = CategoricalField{
		Field:   FieldPaymentStatus,
		Default: PaymentPending,
		Rules: []categoricalRule{
			{PaymentPaid, []string{"pago", "paid", "quitado"}},
			{PaymentOverdue, []string{"atras", "overdue", "venc", "late"}},
			{PaymentPending, []string{"pend", "aguard"}},
		},
	}

	enrollmentStatusField = CategoricalField{
		Field:   FieldEnrollmentStatus,
		Default: EnrollmentActive,
		Rules: []categoricalRule{
			{EnrollmentActive, []string{"ativ", "active", "matricul", "enrolled"}},
			{EnrollmentDropped, []string{"evad", "drop", "desist", "abandon"}},
			{EnrollmentSuspended, []string{"tranc", "suspend"}},
		},
	}

	disciplineStatusField = CategoricalField{
		Field:   FieldDisciplineStatus,
		Default: DisciplineInProgress,
		Rules: []categoricalRule{
			{DisciplineApproved, []string{"aprov", "approv", "pass"}},
			{DisciplineFailed, []string{"reprov", "fail"}},
			{DisciplineInProgress, []string{"andamento", "progress", "cursando"}},
		},
	}

	admissionTypeField = CategoricalField{
		Field:   FieldAdmissionType,
		Default: AdmissionEntranceExam,
		Rules: []categoricalRule{
			{AdmissionExternalTransfer, []string{"extern"}},
			{AdmissionInternalTransfer, []string{"intern"}},
			{AdmissionScholarship, []string{"bols", "scholar"}},
			{AdmissionEntranceExam, []string{"vestib", "entrance", "enem"}},
		},
	}
)

// MapPaymentStatus maps a free-form payment status onto pago|pendente|atrasado.
func MapPaymentStatus(raw string) string { return paymentStatusField.Map(raw) }

// MapEnrollmentStatus maps a free-form enrollment status onto ativo|evadido|trancado.
func MapEnrollmentStatus(raw string) string { return enrollmentStatusField.Map(raw) }

// MapDisciplineStatus maps a free-form discipline status onto aprovado|reprovado|em_andamento.
func MapDisciplineStatus(raw string) string { return disciplineStatusField.Map(raw) }

// MapAdmissionType maps a free-form admission type onto the admission enum;
// anything unrecognized (including absence) counts as vestibular.
func MapAdmissionType(raw string) string { return admissionTypeField.Map(raw) }
