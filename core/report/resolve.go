package report

import "strings"

// fieldRule assigns source columns to one canonical field. A column matches
// when every marker of any one group is contained in its normalized name.
type fieldRule struct {
	Field  string
	Groups [][]string
}

func (r fieldRule) matches(normalizedCol string) bool {
	for _, group := range r.Groups {
		all := true
		for _, marker := range group {
			if !strings.Contains(normalizedCol, marker) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// universityFieldRules is the declarative mapping table for university
// exports, evaluated strictly in order: the more specific rules (evaluation
// score, the status columns) must claim their columns before the looser
// grade/course rules get to scan, otherwise "nota_avaliacao_curso" would be
// eaten by the grade or course rule.
var universityFieldRules = []fieldRule{
	{FieldCourseEvaluation, [][]string{{"avalia"}, {"evaluat"}}},
	{FieldPaymentStatus, [][]string{{"pagamento"}, {"payment"}, {"pag", "status"}}},
	{FieldDisciplineStatus, [][]string{{"disciplina", "status"}, {"discipline", "status"}, {"disciplina", "situacao"}}},
	{FieldEnrollmentStatus, [][]string{{"matricula", "status"}, {"enrollment"}, {"matricula", "situacao"}}},
	{FieldAdmissionType, [][]string{{"ingresso"}, {"admission"}, {"forma", "entrada"}}},
	{FieldAttendancePct, [][]string{{"frequencia"}, {"attendance"}, {"presenca"}, {"freq"}}},
	{FieldFinalGrade, [][]string{{"nota"}, {"grade"}, {"media"}}},
	{FieldSemester, [][]string{{"periodo"}, {"semestre"}, {"semester"}, {"term"}}},
	{FieldDiscipline, [][]string{{"disciplina"}, {"discipline"}, {"materia"}, {"subject"}}},
	{FieldCourse, [][]string{{"curso"}, {"course"}}},
	{FieldStudentID, [][]string{{"aluno"}, {"student"}, {"estudante"}, {"matricula"}}},
}

// universityRequiredFields must resolve or the ingestion is rejected.
var universityRequiredFields = []string{FieldStudentID, FieldCourse}

// Mapping relates canonical fields to the source column indexes that resolved
// to them. A field may map to several columns (redundant near-duplicates in
// messy exports, collapsed later) or to none (defaulted downstream).
type Mapping map[string][]int

// ResolveUniversity maps the normalized source columns onto the canonical
// university schema. Each source column is claimed by at most one field; a
// field may claim several columns. Missing identity columns are fatal.
func ResolveUniversity(columns []string) (Mapping, error) {
	m := make(Mapping, len(universityFieldRules))
	claimed := make([]bool, len(columns))

	for _, rule := range universityFieldRules {
		for i, col := range columns {
			if claimed[i] {
				continue
			}
			if rule.matches(col) {
				m[rule.Field] = append(m[rule.Field], i)
				claimed[i] = true
			}
		}
	}

	var missing []string
	for _, field := range universityRequiredFields {
		if len(m[field]) == 0 {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ResolutionError{Missing: missing}
	}
	return m, nil
}

// School-report resolution.

// schoolSubjectKeys are the fixed subjects of a report card, in output order.
var schoolSubjectKeys = []string{
	"matematica", "portugues", "ingles", "ciencias",
	"historia", "geografia", "artes",
}

// SchoolMapping locates the report-card columns; -1 marks an absent column.
type SchoolMapping struct {
	Nome     int
	Turma    int
	Serie    int
	Faltas   int
	Aulas    int
	Subjects map[string][]int
}

// findColumnLike returns the first column whose normalized name contains one
// of the keywords, scanning keywords in priority order.
func findColumnLike(columns []string, keywords ...string) int {
	for _, kw := range keywords {
		kwn := Normalize(kw)
		for i, col := range columns {
			if strings.Contains(col, kwn) {
				return i
			}
		}
	}
	return -1
}

// ResolveSchool maps the normalized source columns of a school report card.
// Student name and class columns are required.
func ResolveSchool(columns []string) (*SchoolMapping, error) {
	m := &SchoolMapping{
		Nome:     findColumnLike(columns, "nome", "aluno", "name"),
		Turma:    findColumnLike(columns, "turma", "sala", "classe"),
		Serie:    findColumnLike(columns, "serie", "ano"),
		Faltas:   findColumnLike(columns, "falta"),
		Aulas:    findColumnLike(columns, "aulas", "aulas tot", "carga horaria"),
		Subjects: detectSubjectColumns(columns),
	}

	var missing []string
	if m.Nome < 0 {
		missing = append(missing, "nome")
	}
	if m.Turma < 0 {
		missing = append(missing, "turma")
	}
	if len(missing) > 0 {
		return nil, &ResolutionError{Missing: missing}
	}
	return m, nil
}

// detectSubjectColumns assigns each source column to at most one subject:
// either its separator-stripped normalized name contains the subject key
// (average/"media" columns excluded), or it starts with the key's first three
// characters. The prefix fallback is deliberately loose to catch the
// abbreviations and typos seen in real report cards; it does produce false
// positives (any column starting with "art" lands on "artes").
// TODO: decide whether the 3-char prefix should require a word boundary.
func detectSubjectColumns(columns []string) map[string][]int {
	subjects := make(map[string][]int, len(schoolSubjectKeys))
	for i, col := range columns {
		norm := matchKey(col)
		for _, subj := range schoolSubjectKeys {
			if strings.Contains(norm, subj) && !strings.Contains(norm, "media") {
				subjects[subj] = append(subjects[subj], i)
				break
			}
			if strings.HasPrefix(norm, subj[:3]) {
				subjects[subj] = append(subjects[subj], i)
				break
			}
		}
	}
	return subjects
}
