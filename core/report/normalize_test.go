package report

import (
	"testing"

	"github.com/ArthurFreire0/dashboard-School/tests"
)

func decodeAndResolve(t *testing.T, csv string) (*RawTable, Mapping) {
	t.Helper()
	tbl, err := DecodeTable([]byte(csv))
	if err != nil {
		t.Fatalf("DecodeTable() error = %v", err)
	}
	m, err := ResolveUniversity(tbl.Columns)
	if err != nil {
		t.Fatalf("ResolveUniversity() error = %v", err)
	}
	return tbl, m
}

func TestNormalizeUniversity(t *testing.T) {
	tbl, m := decodeAndResolve(t,
		"Aluno,Curso,Período,Disciplina,Nota Final,Frequência,Status Pagamento,Status Disciplina,Nota Avaliação Curso,Status Matrícula,Forma de Ingresso\n"+
			"A001,Direito,2023.1,Cálculo I,8.5,90,Pago,Aprovado,4.5,Ativo,Vestibular\n")

	records := NormalizeUniversity(tbl, m, testutil.ReportConfig())
	if len(records) != 1 {
		t.Fatalf("records = %d; want 1", len(records))
	}
	rec := records[0]

	if rec.StudentID != "A001" || rec.Course != "Direito" {
		t.Errorf("identity = (%q, %q); want (A001, Direito)", rec.StudentID, rec.Course)
	}
	if rec.Semester != "2023.1" || rec.Discipline != "Cálculo I" {
		t.Errorf("context = (%q, %q)", rec.Semester, rec.Discipline)
	}
	if !rec.FinalGrade.Valid || rec.FinalGrade.Float64 != 8.5 {
		t.Errorf("FinalGrade = %+v; want 8.5", rec.FinalGrade)
	}
	if !rec.AttendancePct.Valid || rec.AttendancePct.Float64 != 90 {
		t.Errorf("AttendancePct = %+v; want 90", rec.AttendancePct)
	}
	if rec.PaymentStatus != PaymentPaid || rec.DisciplineStatus != DisciplineApproved {
		t.Errorf("statuses = (%q, %q)", rec.PaymentStatus, rec.DisciplineStatus)
	}
	if rec.EnrollmentStatus != EnrollmentActive || rec.AdmissionType != AdmissionEntranceExam {
		t.Errorf("enrollment = (%q, %q)", rec.EnrollmentStatus, rec.AdmissionType)
	}
	if !rec.IsPassing {
		t.Error("IsPassing = false; want true")
	}
	if rec.AtRisk {
		t.Error("AtRisk = true; want false")
	}
}

func TestNormalizeUniversity_defaults(t *testing.T) {
	// only the required identity columns are present
	tbl, m := decodeAndResolve(t, "Aluno,Curso\nA001,Direito\n")

	records := NormalizeUniversity(tbl, m, testutil.ReportConfig())
	if len(records) != 1 {
		t.Fatalf("records = %d; want 1", len(records))
	}
	rec := records[0]

	if rec.FinalGrade.Valid || rec.AttendancePct.Valid || rec.CourseEvaluation.Valid {
		t.Errorf("numeric fields should be null: %+v", rec)
	}
	if rec.PaymentStatus != PaymentPending {
		t.Errorf("PaymentStatus = %q; want %q", rec.PaymentStatus, PaymentPending)
	}
	if rec.DisciplineStatus != DisciplineInProgress {
		t.Errorf("DisciplineStatus = %q; want %q", rec.DisciplineStatus, DisciplineInProgress)
	}
	if rec.EnrollmentStatus != EnrollmentActive {
		t.Errorf("EnrollmentStatus = %q; want %q", rec.EnrollmentStatus, EnrollmentActive)
	}
	if rec.AdmissionType != AdmissionEntranceExam {
		t.Errorf("AdmissionType = %q; want %q", rec.AdmissionType, AdmissionEntranceExam)
	}
	if rec.IsPassing {
		t.Error("IsPassing = true with null numerics; want false")
	}
	if rec.AtRisk {
		t.Error("AtRisk = true with null numerics; want false")
	}
}

func TestNormalizeUniversity_malformedNumbers(t *testing.T) {
	tbl, m := decodeAndResolve(t, "Aluno,Curso,Nota\nA001,Direito,oito\nA002,Direito,NaN\n")

	records := NormalizeUniversity(tbl, m, testutil.ReportConfig())
	if len(records) != 2 {
		t.Fatalf("records = %d; want 2", len(records))
	}
	for _, rec := range records {
		if rec.FinalGrade.Valid {
			t.Errorf("FinalGrade = %+v; want null for %s", rec.FinalGrade, rec.StudentID)
		}
	}
}

func TestNormalizeUniversity_rowsWithoutStudentDropped(t *testing.T) {
	tbl, m := decodeAndResolve(t, "Aluno,Curso\nA001,Direito\n,Direito\nNaN,Direito\n")

	records := NormalizeUniversity(tbl, m, testutil.ReportConfig())
	if len(records) != 1 {
		t.Fatalf("records = %d; want 1", len(records))
	}
	if records[0].StudentID != "A001" {
		t.Errorf("StudentID = %q; want A001", records[0].StudentID)
	}
}

// colliding columns collapse to the first non-missing value per row
func TestNormalizeUniversity_collidingColumns(t *testing.T) {
	tbl, m := decodeAndResolve(t, "Aluno,Curso,Nota,Nota Final\nA001,Direito,,7.0\nA002,Direito,5.0,9.0\n")

	records := NormalizeUniversity(tbl, m, testutil.ReportConfig())
	if len(records) != 2 {
		t.Fatalf("records = %d; want 2", len(records))
	}
	if !records[0].FinalGrade.Valid || records[0].FinalGrade.Float64 != 7.0 {
		t.Errorf("A001 FinalGrade = %+v; want 7.0", records[0].FinalGrade)
	}
	if !records[1].FinalGrade.Valid || records[1].FinalGrade.Float64 != 5.0 {
		t.Errorf("A002 FinalGrade = %+v; want 5.0 (first column wins)", records[1].FinalGrade)
	}
}

func TestNormalizeUniversity_flags(t *testing.T) {
	tests := []struct {
		name        string
		row         string
		wantPassing bool
		wantAtRisk  bool
	}{
		{name: "passing", row: "8.0,90,Pago", wantPassing: true, wantAtRisk: false},
		{name: "low grade", row: "5.0,90,Pago", wantPassing: false, wantAtRisk: true},
		{name: "low attendance", row: "8.0,60,Pago", wantPassing: false, wantAtRisk: true},
		{name: "overdue payment", row: "8.0,90,Atrasado", wantPassing: true, wantAtRisk: true},
		{name: "grade boundary", row: "6.0,75,Pago", wantPassing: true, wantAtRisk: false},
		{name: "missing grade", row: ",90,Pago", wantPassing: false, wantAtRisk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, m := decodeAndResolve(t, "Aluno,Curso,Nota,Frequência,Status Pagamento\nA001,Direito,"+tt.row+"\n")

			records := NormalizeUniversity(tbl, m, testutil.ReportConfig())
			if len(records) != 1 {
				t.Fatalf("records = %d; want 1", len(records))
			}
			if records[0].IsPassing != tt.wantPassing {
				t.Errorf("IsPassing = %v; want %v", records[0].IsPassing, tt.wantPassing)
			}
			if records[0].AtRisk != tt.wantAtRisk {
				t.Errorf("AtRisk = %v; want %v", records[0].AtRisk, tt.wantAtRisk)
			}
		})
	}
}
