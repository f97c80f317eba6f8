package report

import (
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/ArthurFreire0/dashboard-School/core"
)

// missingValues are cell contents treated as absent besides the empty string.
var missingValues = map[string]struct{}{
	"nan": {}, "none": {}, "null": {}, "na": {}, "n/a": {},
}

func isMissing(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return true
	}
	_, ok := missingValues[v]
	return ok
}

// coerceFloat parses a cell with per-row tolerance: anything non-numeric
// becomes null rather than an error, and the row is retained.
func coerceFloat(v string) null.Float64 {
	v = strings.TrimSpace(v)
	if isMissing(v) {
		return null.Float64{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return null.Float64{}
	}
	return null.Float64From(f)
}

// NormalizeUniversity builds the canonical record table from a decoded table
// and its column mapping. Columns colliding on one canonical field are
// collapsed per row by taking the first non-missing value, never an average.
// Every canonical field is populated: numerics default to null, categoricals
// to their field default. Rows without a student identifier are dropped, as
// nothing downstream can key them.
func NormalizeUniversity(tbl *RawTable, m Mapping, conf core.ReportConfig) []Record {
	pick := func(row []string, field string) string {
		for _, idx := range m[field] {
			if v := strings.TrimSpace(row[idx]); !isMissing(v) {
				return v
			}
		}
		return ""
	}

	records := make([]Record, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		studentID := pick(row, FieldStudentID)
		if studentID == "" {
			continue
		}

		rec := Record{
			StudentID:        studentID,
			Course:           pick(row, FieldCourse),
			Semester:         pick(row, FieldSemester),
			Discipline:       pick(row, FieldDiscipline),
			FinalGrade:       coerceFloat(pick(row, FieldFinalGrade)),
			AttendancePct:    coerceFloat(pick(row, FieldAttendancePct)),
			CourseEvaluation: coerceFloat(pick(row, FieldCourseEvaluation)),
			PaymentStatus:    MapPaymentStatus(pick(row, FieldPaymentStatus)),
			DisciplineStatus: MapDisciplineStatus(pick(row, FieldDisciplineStatus)),
			EnrollmentStatus: MapEnrollmentStatus(pick(row, FieldEnrollmentStatus)),
			AdmissionType:    MapAdmissionType(pick(row, FieldAdmissionType)),
		}

		rec.IsPassing = rec.FinalGrade.Valid && rec.AttendancePct.Valid &&
			rec.FinalGrade.Float64 >= conf.PassingGrade &&
			rec.AttendancePct.Float64 >= conf.MinAttendance
		rec.AtRisk = (rec.FinalGrade.Valid && rec.FinalGrade.Float64 < conf.PassingGrade) ||
			(rec.AttendancePct.Valid && rec.AttendancePct.Float64 < conf.MinAttendance) ||
			rec.PaymentStatus == PaymentOverdue

		records = append(records, rec)
	}
	return records
}
