package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ArthurFreire0/dashboard-School/core"
)

type (
	// Repository persists the canonical table as Student/Discipline/Grade
	// entities, idempotently by natural key, plus a churn-assessment cache.
	// Persistence is best-effort: a failing Repository never blocks the
	// in-memory result from reaching the rendering path.
	Repository interface {
		FindOrCreateStudent(ctx context.Context, stu Student) (Student, error)
		FindOrCreateDiscipline(ctx context.Context, dis Discipline) (Discipline, error)
		InsertGrade(ctx context.Context, grd Grade) error
		SaveAssessments(ctx context.Context, assessments []ChurnAssessment) error
		LatestAssessments(ctx context.Context) ([]ChurnAssessment, error)
	}

	Service struct {
		conf core.ReportConfig
		repo Repository
		log  core.Logger
	}

	// UniversityIngestion is the result of one university CSV upload.
	UniversityIngestion struct {
		UploadID    string            `json:"uploadId"`
		Filename    string            `json:"filename"`
		Records     []Record          `json:"records"`
		Assessments []ChurnAssessment `json:"assessments"`
	}

	// SchoolIngestion is the result of one school report-card upload.
	// The school flavor is display-only and is not persisted.
	SchoolIngestion struct {
		UploadID string        `json:"uploadId"`
		Filename string        `json:"filename"`
		Cards    []ReportCard  `json:"cards"`
		Summary  SchoolSummary `json:"summary"`
	}

	// SchoolOptions are per-upload policy overrides.
	SchoolOptions struct {
		// TotalClasses overrides the default yearly class count used when
		// the source has no such column; 0 keeps the configured default.
		TotalClasses float64
	}
)

func NewService(conf core.ReportConfig, repo Repository, log core.Logger) *Service {
	return &Service{conf: conf, repo: repo, log: log}
}

// IngestUniversity runs the full pipeline on one university CSV upload:
// decode, resolve, normalize, assess, persist. Decode and resolution failures
// abort; persistence failures are logged and swallowed. The filename is for
// diagnostics only and is never parsed.
func (svc *Service) IngestUniversity(ctx context.Context, filename string, data []byte) (*UniversityIngestion, error) {
	uploadID := uuid.New().String()

	tbl, err := DecodeTable(data)
	if err != nil {
		return nil, err
	}
	mapping, err := ResolveUniversity(tbl.Columns)
	if err != nil {
		return nil, err
	}

	records := NormalizeUniversity(tbl, mapping, svc.conf)
	assessments := Assess(records, svc.conf)

	if svc.repo != nil {
		if err := svc.persist(ctx, records, assessments); err != nil {
			svc.log.Error(fmt.Sprintf("upload %s (%s): persistence failed", uploadID, filename), err)
		}
	}
	svc.log.Info(fmt.Sprintf("upload %s (%s): %d records, %d students", uploadID, filename, len(records), len(assessments)))

	return &UniversityIngestion{
		UploadID:    uploadID,
		Filename:    filename,
		Records:     records,
		Assessments: assessments,
	}, nil
}

// IngestSchool runs the school-report pipeline on one CSV upload.
func (svc *Service) IngestSchool(ctx context.Context, filename string, data []byte, opts SchoolOptions) (*SchoolIngestion, error) {
	uploadID := uuid.New().String()

	conf := svc.conf
	if opts.TotalClasses > 0 {
		conf.DefaultTotalClasses = opts.TotalClasses
	}

	tbl, err := DecodeTable(data)
	if err != nil {
		return nil, err
	}
	mapping, err := ResolveSchool(tbl.Columns)
	if err != nil {
		return nil, err
	}

	cards := NormalizeSchool(tbl, mapping, conf)
	svc.log.Info(fmt.Sprintf("upload %s (%s): %d report cards", uploadID, filename, len(cards)))

	return &SchoolIngestion{
		UploadID: uploadID,
		Filename: filename,
		Cards:    cards,
		Summary:  BuildSchoolSummary(cards, 5),
	}, nil
}

// Assess recomputes churn assessments for an already-canonical table.
// Each call yields a fresh set; assessments are never mutated in place.
func (svc *Service) Assess(records []Record) []ChurnAssessment {
	return Assess(records, svc.conf)
}

// Churn returns the latest persisted assessment per student.
func (svc *Service) Churn(ctx context.Context) ([]ChurnAssessment, error) {
	return svc.repo.LatestAssessments(ctx)
}

func (svc *Service) persist(ctx context.Context, records []Record, assessments []ChurnAssessment) error {
	students := make(map[string]Student)
	disciplines := make(map[string]Discipline)

	for _, rec := range records {
		stu, ok := students[rec.StudentID]
		if !ok {
			var err error
			stu, err = svc.repo.FindOrCreateStudent(ctx, Student{
				StudentID:        rec.StudentID,
				Course:           rec.Course,
				AdmissionType:    rec.AdmissionType,
				EnrollmentStatus: rec.EnrollmentStatus,
			})
			if err != nil {
				return err
			}
			students[rec.StudentID] = stu
		}

		if rec.Discipline == "" {
			// nothing to attach the grade to
			continue
		}
		dis, ok := disciplines[rec.Discipline]
		if !ok {
			var err error
			dis, err = svc.repo.FindOrCreateDiscipline(ctx, Discipline{Name: rec.Discipline})
			if err != nil {
				return err
			}
			disciplines[rec.Discipline] = dis
		}

		if err := svc.repo.InsertGrade(ctx, Grade{
			StudentID:        stu.ID,
			DisciplineID:     dis.ID,
			Semester:         rec.Semester,
			FinalGrade:       rec.FinalGrade,
			AttendancePct:    rec.AttendancePct,
			PaymentStatus:    rec.PaymentStatus,
			DisciplineStatus: rec.DisciplineStatus,
			CourseEvaluation: rec.CourseEvaluation,
		}); err != nil {
			return err
		}
	}

	return svc.repo.SaveAssessments(ctx, assessments)
}
