package report

import "testing"

func TestMapPaymentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pago", PaymentPaid},
		{"PAID", PaymentPaid},
		{"Quitado", PaymentPaid},
		{"Atrasado", PaymentOverdue},
		{"Overdue", PaymentOverdue},
		{"Vencido", PaymentOverdue},
		{"Late", PaymentOverdue},
		{"Pendente", PaymentPending},
		{"Aguardando", PaymentPending},
		{"", PaymentPending},
		{"xyz_unknown", PaymentPending},
		{"NaN", PaymentPending},
	}
	for _, tt := range tests {
		if got := MapPaymentStatus(tt.in); got != tt.want {
			t.Errorf("MapPaymentStatus(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapEnrollmentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ativo", EnrollmentActive},
		{"Active", EnrollmentActive},
		{"Matriculado", EnrollmentActive},
		{"Enrolled", EnrollmentActive},
		{"Evadido", EnrollmentDropped},
		{"Dropped Out", EnrollmentDropped},
		{"Desistente", EnrollmentDropped},
		{"Abandonou", EnrollmentDropped},
		{"Trancado", EnrollmentSuspended},
		{"Suspended", EnrollmentSuspended},
		{"", EnrollmentActive},
		{"???", EnrollmentActive},
	}
	for _, tt := range tests {
		if got := MapEnrollmentStatus(tt.in); got != tt.want {
			t.Errorf("MapEnrollmentStatus(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapDisciplineStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Aprovado", DisciplineApproved},
		{"Approved", DisciplineApproved},
		{"Passed", DisciplineApproved},
		{"Reprovado", DisciplineFailed},
		{"Failed", DisciplineFailed},
		{"Em Andamento", DisciplineInProgress},
		{"In Progress", DisciplineInProgress},
		{"Cursando", DisciplineInProgress},
		{"", DisciplineInProgress},
		{"whatever", DisciplineInProgress},
	}
	for _, tt := range tests {
		if got := MapDisciplineStatus(tt.in); got != tt.want {
			t.Errorf("MapDisciplineStatus(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapAdmissionType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vestibular", AdmissionEntranceExam},
		{"ENEM", AdmissionEntranceExam},
		{"Entrance Exam", AdmissionEntranceExam},
		{"Transferência Externa", AdmissionExternalTransfer},
		{"EXTERNAL TRANSFER", AdmissionExternalTransfer},
		{"Transferência Interna", AdmissionInternalTransfer},
		{"internal", AdmissionInternalTransfer},
		{"Bolsista", AdmissionScholarship},
		{"Scholarship", AdmissionScholarship},
		{"", AdmissionEntranceExam},
		{"outro", AdmissionEntranceExam},
	}
	for _, tt := range tests {
		if got := MapAdmissionType(tt.in); got != tt.want {
			t.Errorf("MapAdmissionType(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
