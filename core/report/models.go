package report

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Canonical field names. Source columns are matched to these heuristically;
// every ingested table carries the full set, defaulted where absent.
const (
	FieldStudentID        = "student_id"
	FieldCourse           = "course"
	FieldSemester         = "semester"
	FieldDiscipline       = "discipline"
	FieldFinalGrade       = "final_grade"
	FieldAttendancePct    = "attendance_pct"
	FieldPaymentStatus    = "payment_status"
	FieldDisciplineStatus = "discipline_status"
	FieldCourseEvaluation = "course_evaluation"
	FieldEnrollmentStatus = "enrollment_status"
	FieldAdmissionType    = "admission_type"
)

// Canonical categorical values, kept in Portuguese as the institutions'
// exports (and the persisted rows) use them.
const (
	PaymentPaid    = "pago"
	PaymentPending = "pendente"
	PaymentOverdue = "atrasado"

	DisciplineApproved   = "aprovado"
	DisciplineFailed     = "reprovado"
	DisciplineInProgress = "em_andamento"

	EnrollmentActive    = "ativo"
	EnrollmentDropped   = "evadido"
	EnrollmentSuspended = "trancado"

	AdmissionEntranceExam     = "vestibular"
	AdmissionExternalTransfer = "transferencia_externa"
	AdmissionInternalTransfer = "transferencia_interna"
	AdmissionScholarship      = "bolsista"
)

// Churn risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

type (
	// Record is one canonical university row: a student's result in one
	// discipline for one semester. A student usually spans several records.
	// Numeric fields are null when the source value was absent or malformed.
	Record struct {
		StudentID        string       `json:"studentId"`
		Course           string       `json:"course"`
		Semester         string       `json:"semester"`
		Discipline       string       `json:"discipline"`
		FinalGrade       null.Float64 `json:"finalGrade"`
		AttendancePct    null.Float64 `json:"attendancePct"`
		PaymentStatus    string       `json:"paymentStatus"`
		DisciplineStatus string       `json:"disciplineStatus"`
		CourseEvaluation null.Float64 `json:"courseEvaluation"`
		EnrollmentStatus string       `json:"enrollmentStatus"`
		AdmissionType    string       `json:"admissionType"`
		IsPassing        bool         `json:"isPassing"`
		AtRisk           bool         `json:"atRisk"`
	}

	// ChurnAssessment is the heuristic dropout-risk estimate for one distinct
	// student. It is recomputed fresh on every run; persisted rows are only a
	// downstream cache.
	ChurnAssessment struct {
		StudentID        string       `json:"studentId"`
		Course           string       `json:"course"`
		ChurnProbability float64      `json:"churnProbability"`
		RiskLevel        string       `json:"riskLevel"`
		AvgGrade         null.Float64 `json:"avgGrade"`
		AvgAttendance    null.Float64 `json:"avgAttendance"`
		FailedCount      int          `json:"failedCount"`
	}

	// ReportCard is one school-variant row: a student's subject grades,
	// attendance and pass/fail status for the year.
	ReportCard struct {
		Nome       string       `json:"nome"`
		Turma      string       `json:"turma"`
		Serie      string       `json:"serie"`
		Matematica null.Float64 `json:"matematica"`
		Portugues  null.Float64 `json:"portugues"`
		Ingles     null.Float64 `json:"ingles"`
		Ciencias   null.Float64 `json:"ciencias"`
		Historia   null.Float64 `json:"historia"`
		Geografia  null.Float64 `json:"geografia"`
		Artes      null.Float64 `json:"artes"`
		MediaGeral null.Float64 `json:"mediaGeral"`
		Faltas     null.Float64 `json:"faltas"`
		AulasAno   null.Float64 `json:"aulasAno"`
		Presenca   null.Float64 `json:"presenca"`
		Status     string       `json:"status"`
	}
)

// subjectField returns the destination for a subject key's averaged grade.
func (rc *ReportCard) subjectField(key string) *null.Float64 {
	switch key {
	case "matematica":
		return &rc.Matematica
	case "portugues":
		return &rc.Portugues
	case "ingles":
		return &rc.Ingles
	case "ciencias":
		return &rc.Ciencias
	case "historia":
		return &rc.Historia
	case "geografia":
		return &rc.Geografia
	case "artes":
		return &rc.Artes
	}
	return nil
}

// subjectValues returns the subject grades in fixed column order.
func (rc *ReportCard) subjectValues() []null.Float64 {
	return []null.Float64{
		rc.Matematica, rc.Portugues, rc.Ingles, rc.Ciencias,
		rc.Historia, rc.Geografia, rc.Artes,
	}
}

// Persistence entities, translated from the canonical table and upserted by
// natural key (Student.StudentID, Discipline.Name).
type (
	Student struct {
		ID               int       `db:"id"`
		StudentID        string    `db:"student_id"`
		Name             string    `db:"name"`
		Course           string    `db:"course"`
		AdmissionType    string    `db:"admission_type"`
		EnrollmentStatus string    `db:"enrollment_status"`
		CreatedAt        time.Time `db:"created_at"`
		UpdatedAt        time.Time `db:"updated_at"`
	}

	Discipline struct {
		ID        int       `db:"id"`
		Name      string    `db:"name"`
		Code      string    `db:"code"`
		CreatedAt time.Time `db:"created_at"`
	}

	Grade struct {
		ID               int          `db:"id"`
		StudentID        int          `db:"student_id"`
		DisciplineID     int          `db:"discipline_id"`
		Semester         string       `db:"semester"`
		FinalGrade       null.Float64 `db:"final_grade"`
		AttendancePct    null.Float64 `db:"attendance_pct"`
		PaymentStatus    string       `db:"payment_status"`
		DisciplineStatus string       `db:"discipline_status"`
		CourseEvaluation null.Float64 `db:"course_evaluation"`
		CreatedAt        time.Time    `db:"created_at"`
		UpdatedAt        time.Time    `db:"updated_at"`
	}
)
