package sqliterepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ArthurFreire0/dashboard-School/core/report"
)

type reportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *sqlx.DB) *reportRepository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) FindOrCreateStudent(ctx context.Context, stu report.Student) (report.Student, error) {
	var existing report.Student
	err := repo.db.GetContext(ctx, &existing, `SELECT * FROM students WHERE student_id = ?`, stu.StudentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return report.Student{}, errors.Wrap(err, "getting student")
	}

	now := time.Now().UTC()
	stu.CreatedAt = now
	stu.UpdatedAt = now
	res, err := repo.db.ExecContext(ctx,
		`INSERT INTO students (student_id, name, course, admission_type, enrollment_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stu.StudentID, stu.Name, stu.Course, stu.AdmissionType, stu.EnrollmentStatus, stu.CreatedAt, stu.UpdatedAt,
	)
	if err != nil {
		return report.Student{}, errors.Wrap(err, "creating student")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return report.Student{}, errors.Wrap(err, "creating student")
	}
	stu.ID = int(id)
	return stu, nil
}

func (repo *reportRepository) FindOrCreateDiscipline(ctx context.Context, dis report.Discipline) (report.Discipline, error) {
	var existing report.Discipline
	err := repo.db.GetContext(ctx, &existing, `SELECT * FROM disciplines WHERE name = ?`, dis.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return report.Discipline{}, errors.Wrap(err, "getting discipline")
	}

	dis.CreatedAt = time.Now().UTC()
	res, err := repo.db.ExecContext(ctx,
		`INSERT INTO disciplines (name, code, created_at) VALUES (?, ?, ?)`,
		dis.Name, dis.Code, dis.CreatedAt,
	)
	if err != nil {
		return report.Discipline{}, errors.Wrap(err, "creating discipline")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return report.Discipline{}, errors.Wrap(err, "creating discipline")
	}
	dis.ID = int(id)
	return dis, nil
}

func (repo *reportRepository) InsertGrade(ctx context.Context, grd report.Grade) error {
	now := time.Now().UTC()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO grades (student_id, discipline_id, semester, final_grade, attendance_pct,
		                     payment_status, discipline_status, course_evaluation, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		grd.StudentID, grd.DisciplineID, grd.Semester, grd.FinalGrade, grd.AttendancePct,
		grd.PaymentStatus, grd.DisciplineStatus, grd.CourseEvaluation, now, now,
	)
	return errors.Wrap(err, "inserting grade")
}

// churnFactors is the denormalized detail kept alongside a cached prediction.
type churnFactors struct {
	AvgGrade      *float64 `json:"avgGrade"`
	AvgAttendance *float64 `json:"avgAttendance"`
	FailedCount   int      `json:"failedCount"`
}

func (repo *reportRepository) SaveAssessments(ctx context.Context, assessments []report.ChurnAssessment) error {
	now := time.Now().UTC()
	for _, a := range assessments {
		var studentID int
		err := repo.db.GetContext(ctx, &studentID, `SELECT id FROM students WHERE student_id = ?`, a.StudentID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "resolving student for assessment")
		}

		factors, err := json.Marshal(churnFactors{
			AvgGrade:      a.AvgGrade.Ptr(),
			AvgAttendance: a.AvgAttendance.Ptr(),
			FailedCount:   a.FailedCount,
		})
		if err != nil {
			return errors.Wrap(err, "encoding assessment factors")
		}

		if _, err = repo.db.ExecContext(ctx,
			`INSERT INTO churn_predictions (student_id, prediction_date, churn_probability, risk_level, factors)
			 VALUES (?, ?, ?, ?, ?)`,
			studentID, now, a.ChurnProbability, a.RiskLevel, string(factors),
		); err != nil {
			return errors.Wrap(err, "inserting assessment")
		}
	}
	return nil
}

func (repo *reportRepository) LatestAssessments(ctx context.Context) ([]report.ChurnAssessment, error) {
	rows := []struct {
		StudentID        string  `db:"student_id"`
		Course           string  `db:"course"`
		ChurnProbability float64 `db:"churn_probability"`
		RiskLevel        string  `db:"risk_level"`
		Factors          string  `db:"factors"`
	}{}
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT s.student_id, s.course, cp.churn_probability, cp.risk_level, cp.factors
		 FROM churn_predictions cp
		 JOIN students s ON s.id = cp.student_id
		 WHERE cp.id IN (SELECT MAX(id) FROM churn_predictions GROUP BY student_id)
		 ORDER BY cp.churn_probability DESC`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying assessments")
	}

	assessments := make([]report.ChurnAssessment, 0, len(rows))
	for _, row := range rows {
		a := report.ChurnAssessment{
			StudentID:        row.StudentID,
			Course:           row.Course,
			ChurnProbability: row.ChurnProbability,
			RiskLevel:        row.RiskLevel,
		}
		var factors churnFactors
		if err := json.Unmarshal([]byte(row.Factors), &factors); err == nil {
			a.AvgGrade = null.Float64FromPtr(factors.AvgGrade)
			a.AvgAttendance = null.Float64FromPtr(factors.AvgAttendance)
			a.FailedCount = factors.FailedCount
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}
