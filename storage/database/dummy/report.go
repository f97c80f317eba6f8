package dummydb

import (
	"context"
	"sort"
	"sync"

	"github.com/ArthurFreire0/dashboard-School/core/report"
)

// ReportRepository is an in-memory report.Repository for tests and local
// development. Set Err to force every operation to fail, to exercise the
// best-effort persistence path.
type ReportRepository struct {
	Err error

	mu          sync.Mutex
	students    map[string]report.Student
	disciplines map[string]report.Discipline
	grades      []report.Grade
	assessments []report.ChurnAssessment
}

var _ report.Repository = (*ReportRepository)(nil)

func NewReportRepository() *ReportRepository {
	return &ReportRepository{
		students:    make(map[string]report.Student),
		disciplines: make(map[string]report.Discipline),
	}
}

func (repo *ReportRepository) FindOrCreateStudent(_ context.Context, stu report.Student) (report.Student, error) {
	if repo.Err != nil {
		return report.Student{}, repo.Err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if existing, ok := repo.students[stu.StudentID]; ok {
		return existing, nil
	}
	stu.ID = len(repo.students) + 1
	repo.students[stu.StudentID] = stu
	return stu, nil
}

func (repo *ReportRepository) FindOrCreateDiscipline(_ context.Context, dis report.Discipline) (report.Discipline, error) {
	if repo.Err != nil {
		return report.Discipline{}, repo.Err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if existing, ok := repo.disciplines[dis.Name]; ok {
		return existing, nil
	}
	dis.ID = len(repo.disciplines) + 1
	repo.disciplines[dis.Name] = dis
	return dis, nil
}

func (repo *ReportRepository) InsertGrade(_ context.Context, grd report.Grade) error {
	if repo.Err != nil {
		return repo.Err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	grd.ID = len(repo.grades) + 1
	repo.grades = append(repo.grades, grd)
	return nil
}

func (repo *ReportRepository) SaveAssessments(_ context.Context, assessments []report.ChurnAssessment) error {
	if repo.Err != nil {
		return repo.Err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	// latest run wins per student
	byStudent := make(map[string]int, len(repo.assessments))
	for i, a := range repo.assessments {
		byStudent[a.StudentID] = i
	}
	for _, a := range assessments {
		if i, ok := byStudent[a.StudentID]; ok {
			repo.assessments[i] = a
			continue
		}
		repo.assessments = append(repo.assessments, a)
	}
	return nil
}

func (repo *ReportRepository) LatestAssessments(_ context.Context) ([]report.ChurnAssessment, error) {
	if repo.Err != nil {
		return nil, repo.Err
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()

	// highest risk first, as the sqlite repository orders them
	out := make([]report.ChurnAssessment, len(repo.assessments))
	copy(out, repo.assessments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChurnProbability > out[j].ChurnProbability
	})
	return out, nil
}

// Students reports how many distinct students have been persisted.
func (repo *ReportRepository) Students() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.students)
}

// Grades reports how many grade rows have been persisted.
func (repo *ReportRepository) Grades() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.grades)
}
