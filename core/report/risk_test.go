package report

import (
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/ArthurFreire0/dashboard-School/tests"
)

func rec(id string, grade, att float64, payment, status string) Record {
	return Record{
		StudentID:        id,
		Course:           "Direito",
		FinalGrade:       null.Float64From(grade),
		AttendancePct:    null.Float64From(att),
		PaymentStatus:    payment,
		DisciplineStatus: status,
	}
}

func TestAssess_highRiskStudent(t *testing.T) {
	// failing grades, very low attendance, one overdue payment, one failed
	// discipline and a bad course evaluation stack up to a high-risk call
	records := []Record{
		rec("A001", 3, 40, PaymentOverdue, DisciplineFailed),
		rec("A001", 4, 45, PaymentPaid, DisciplineInProgress),
		rec("A001", 5, 50, PaymentPaid, DisciplineInProgress),
	}
	for i := range records {
		records[i].CourseEvaluation = null.Float64From(2)
	}

	assessments := Assess(records, testutil.ReportConfig())
	if len(assessments) != 1 {
		t.Fatalf("assessments = %d; want 1", len(assessments))
	}
	a := assessments[0]

	if a.StudentID != "A001" || a.Course != "Direito" {
		t.Errorf("identity = (%q, %q); want (A001, Direito)", a.StudentID, a.Course)
	}
	if a.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %q (p=%v); want %q", a.RiskLevel, a.ChurnProbability, RiskHigh)
	}
	if a.ChurnProbability < 0.7 {
		t.Errorf("ChurnProbability = %v; want >= 0.7", a.ChurnProbability)
	}
	if !a.AvgGrade.Valid || a.AvgGrade.Float64 != 4.0 {
		t.Errorf("AvgGrade = %+v; want 4.0", a.AvgGrade)
	}
	if !a.AvgAttendance.Valid || a.AvgAttendance.Float64 != 45.0 {
		t.Errorf("AvgAttendance = %+v; want 45.0", a.AvgAttendance)
	}
	if a.FailedCount != 1 {
		t.Errorf("FailedCount = %d; want 1", a.FailedCount)
	}
}

func TestAssess_lowRiskStudent(t *testing.T) {
	records := []Record{
		rec("A002", 9, 95, PaymentPaid, DisciplineApproved),
		rec("A002", 8, 92, PaymentPaid, DisciplineApproved),
	}

	assessments := Assess(records, testutil.ReportConfig())
	a := assessments[0]
	if a.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q (p=%v); want %q", a.RiskLevel, a.ChurnProbability, RiskLow)
	}
	if a.ChurnProbability != 0 {
		t.Errorf("ChurnProbability = %v; want 0", a.ChurnProbability)
	}
}

func TestAssess_mediumRiskStudent(t *testing.T) {
	// avg grade 5.5 (+20) and avg attendance 70 (+15): p = 0.35... plus one
	// overdue in two records (+10) lands at 0.45
	records := []Record{
		rec("A003", 5, 70, PaymentOverdue, DisciplineInProgress),
		rec("A003", 6, 70, PaymentPaid, DisciplineInProgress),
	}

	assessments := Assess(records, testutil.ReportConfig())
	a := assessments[0]
	if a.RiskLevel != RiskMedium {
		t.Errorf("RiskLevel = %q (p=%v); want %q", a.RiskLevel, a.ChurnProbability, RiskMedium)
	}
}

func TestAssess_probabilityBounded(t *testing.T) {
	// pile on every contribution; the probability still caps at 1.0
	records := []Record{rec("A004", 0, 0, PaymentOverdue, DisciplineFailed)}
	records[0].CourseEvaluation = null.Float64From(1)

	assessments := Assess(records, testutil.ReportConfig())
	p := assessments[0].ChurnProbability
	if p < 0 || p > 1 {
		t.Errorf("ChurnProbability = %v; want within [0, 1]", p)
	}
	if p != 1.0 {
		t.Errorf("ChurnProbability = %v; want capped at 1.0", p)
	}
}

func TestAssess_missingMetricsContributeNothing(t *testing.T) {
	records := []Record{{StudentID: "A005", Course: "Direito", PaymentStatus: PaymentPaid}}

	assessments := Assess(records, testutil.ReportConfig())
	a := assessments[0]
	if a.ChurnProbability != 0 || a.RiskLevel != RiskLow {
		t.Errorf("assessment = %+v; want zero probability, low risk", a)
	}
	if a.AvgGrade.Valid || a.AvgAttendance.Valid {
		t.Errorf("averages should be null: %+v", a)
	}
}

func TestAssess_firstOccurrenceOrder(t *testing.T) {
	records := []Record{
		rec("B2", 8, 90, PaymentPaid, DisciplineApproved),
		rec("A1", 8, 90, PaymentPaid, DisciplineApproved),
		rec("B2", 7, 85, PaymentPaid, DisciplineApproved),
	}

	assessments := Assess(records, testutil.ReportConfig())
	if len(assessments) != 2 {
		t.Fatalf("assessments = %d; want 2", len(assessments))
	}
	if assessments[0].StudentID != "B2" || assessments[1].StudentID != "A1" {
		t.Errorf("order = [%s %s]; want [B2 A1]", assessments[0].StudentID, assessments[1].StudentID)
	}
}

func TestAssess_recordOrderIrrelevant(t *testing.T) {
	fwd := []Record{
		rec("A006", 3, 40, PaymentOverdue, DisciplineFailed),
		rec("A006", 7, 90, PaymentPaid, DisciplineApproved),
	}
	rev := []Record{fwd[1], fwd[0]}

	p1 := Assess(fwd, testutil.ReportConfig())[0].ChurnProbability
	p2 := Assess(rev, testutil.ReportConfig())[0].ChurnProbability
	if p1 != p2 {
		t.Errorf("probability depends on record order: %v != %v", p1, p2)
	}
}

// with every other input held fixed, a worse average grade or a higher
// overdue-payment rate can only raise the probability, never lower it
func TestAssess_monotonicity(t *testing.T) {
	conf := testutil.ReportConfig()

	t.Run("decreasing average grade", func(t *testing.T) {
		grades := []float64{9, 7.5, 6.9, 5.9, 4.0, 3, 0}
		prev := -1.0
		for _, grade := range grades {
			records := []Record{rec("A001", grade, 90, PaymentPaid, DisciplineApproved)}
			p := Assess(records, conf)[0].ChurnProbability
			if p < prev {
				t.Errorf("probability dropped to %v at grade %v (was %v)", p, grade, prev)
			}
			prev = p
		}
	})

	t.Run("increasing overdue rate", func(t *testing.T) {
		prev := -1.0
		for overdue := 0; overdue <= 4; overdue++ {
			records := make([]Record, 4)
			for i := range records {
				payment := PaymentPaid
				if i < overdue {
					payment = PaymentOverdue
				}
				records[i] = rec("A001", 8, 90, payment, DisciplineApproved)
			}
			p := Assess(records, conf)[0].ChurnProbability
			if p < prev {
				t.Errorf("probability dropped to %v at %d overdue payments (was %v)", p, overdue, prev)
			}
			prev = p
		}
	})
}

func TestAssess_empty(t *testing.T) {
	if got := Assess(nil, testutil.ReportConfig()); len(got) != 0 {
		t.Errorf("Assess(nil) = %v; want empty", got)
	}
}
