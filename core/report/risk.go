package report

import (
	"math"

	"github.com/volatiletech/null/v8"

	"github.com/ArthurFreire0/dashboard-School/core"
)

// Churn score contributions. The score is an additive heuristic over a
// student's records, capped at 100 and reported as a probability in [0, 1].
// It is a fixed weighted policy, not a trained model.
const (
	gradeVeryLowPoints = 30 // average grade at or below 4.0
	gradeLowPoints     = 20 // below 6.0
	gradeMidPoints     = 10 // below 7.0

	attendanceVeryLowPoints = 25 // average attendance below 50
	attendanceLowPoints     = 15 // below 75
	attendanceMidPoints     = 5  // below 85

	overdueWeight = 20 // scaled by the student's overdue-payment rate
	failureWeight = 15 // scaled by the student's failed-discipline rate

	evaluationVeryLowPoints = 10 // average course evaluation at or below 3
	evaluationLowPoints     = 5  // at or below 5
)

// Assess computes one fresh ChurnAssessment per distinct student in the
// canonical table, in first-occurrence order. Pure: assessments depend only
// on sums and means over each student's records, never on record order.
func Assess(records []Record, conf core.ReportConfig) []ChurnAssessment {
	byStudent := make(map[string][]Record)
	var order []string
	for _, rec := range records {
		if _, seen := byStudent[rec.StudentID]; !seen {
			order = append(order, rec.StudentID)
		}
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}

	assessments := make([]ChurnAssessment, 0, len(order))
	for _, id := range order {
		assessments = append(assessments, scoreStudent(byStudent[id], conf))
	}
	return assessments
}

func scoreStudent(recs []Record, conf core.ReportConfig) ChurnAssessment {
	var gradeSum, attSum, evalSum float64
	var gradeN, attN, evalN, overdue, failed int
	for _, rec := range recs {
		if rec.FinalGrade.Valid {
			gradeSum += rec.FinalGrade.Float64
			gradeN++
		}
		if rec.AttendancePct.Valid {
			attSum += rec.AttendancePct.Float64
			attN++
		}
		if rec.CourseEvaluation.Valid {
			evalSum += rec.CourseEvaluation.Float64
			evalN++
		}
		if rec.PaymentStatus == PaymentOverdue {
			overdue++
		}
		if rec.DisciplineStatus == DisciplineFailed {
			failed++
		}
	}

	var score float64
	var avgGrade, avgAttendance null.Float64

	// a missing average contributes nothing
	if gradeN > 0 {
		avg := gradeSum / float64(gradeN)
		avgGrade = null.Float64From(avg)
		switch {
		case avg <= 4.0:
			score += gradeVeryLowPoints
		case avg < 6.0:
			score += gradeLowPoints
		case avg < 7.0:
			score += gradeMidPoints
		}
	}
	if attN > 0 {
		avg := attSum / float64(attN)
		avgAttendance = null.Float64From(avg)
		switch {
		case avg < 50:
			score += attendanceVeryLowPoints
		case avg < 75:
			score += attendanceLowPoints
		case avg < 85:
			score += attendanceMidPoints
		}
	}

	total := float64(len(recs))
	score += overdueWeight * float64(overdue) / total
	score += failureWeight * float64(failed) / total

	if evalN > 0 {
		avg := evalSum / float64(evalN)
		switch {
		case avg <= 3:
			score += evaluationVeryLowPoints
		case avg <= 5:
			score += evaluationLowPoints
		}
	}

	probability := math.Min(score/100, 1.0)

	level := RiskLow
	switch {
	case probability >= conf.HighRiskThreshold:
		level = RiskHigh
	case probability >= conf.MediumRiskThreshold:
		level = RiskMedium
	}

	return ChurnAssessment{
		StudentID:        recs[0].StudentID,
		Course:           recs[0].Course,
		ChurnProbability: probability,
		RiskLevel:        level,
		AvgGrade:         avgGrade,
		AvgAttendance:    avgAttendance,
		FailedCount:      failed,
	}
}
