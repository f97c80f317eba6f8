package report

import (
	"math"
	"sort"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/ArthurFreire0/dashboard-School/core"
)

// Report-card statuses shown to users (kept capitalized as displayed).
const (
	StatusApproved = "Aprovado"
	StatusFailed   = "Reprovado"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// schoolCell reinterprets decimal-comma notation before any numeric coercion.
// The original exports mix "7,5" and "7.5" freely.
func schoolCell(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
}

// cleanSeriesValue strips the "série"/"ano" noise around a grade-level value:
// "3ª Série" -> "3a", "9º ano" -> "9o". The ordinal indicators are folded by
// hand since they are not combining marks.
func cleanSeriesValue(v string) string {
	v = strings.NewReplacer("ª", "a", "º", "o").Replace(v)
	n := Normalize(v)
	n = strings.ReplaceAll(n, "serie", "")
	n = strings.ReplaceAll(n, "ano", "")
	n = strings.ReplaceAll(n, ".0", "")
	n = strings.TrimSpace(n)
	if n == "" || n == "nan" || n == "none" {
		return ""
	}
	return n
}

// meanOf averages the valid values, rounded to 1 decimal; null when none are valid.
func meanOf(values []null.Float64) null.Float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v.Valid {
			sum += v.Float64
			n++
		}
	}
	if n == 0 {
		return null.Float64{}
	}
	return null.Float64From(round1(sum / float64(n)))
}

// NormalizeSchool builds report cards from a decoded school table. Several
// source columns assigned to one subject are averaged (this is the one place
// colliding columns average instead of collapsing). The attendance percentage
// is derived from absences over total yearly classes, defaulting the
// denominator when the source has no such column.
func NormalizeSchool(tbl *RawTable, m *SchoolMapping, conf core.ReportConfig) []ReportCard {
	cards := make([]ReportCard, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = schoolCell(v)
		}

		card := ReportCard{
			Nome:  cells[m.Nome],
			Turma: cells[m.Turma],
		}
		if m.Serie >= 0 {
			card.Serie = cleanSeriesValue(cells[m.Serie])
		}

		for _, subj := range schoolSubjectKeys {
			cols := m.Subjects[subj]
			values := make([]null.Float64, 0, len(cols))
			for _, idx := range cols {
				values = append(values, coerceFloat(cells[idx]))
			}
			*card.subjectField(subj) = meanOf(values)
		}
		card.MediaGeral = meanOf(card.subjectValues())

		if m.Faltas >= 0 {
			card.Faltas = coerceFloat(cells[m.Faltas])
		}
		if m.Aulas >= 0 {
			card.AulasAno = coerceFloat(cells[m.Aulas])
		} else {
			card.AulasAno = null.Float64From(conf.DefaultTotalClasses)
		}

		if card.Faltas.Valid && card.AulasAno.Valid && card.AulasAno.Float64 != 0 {
			card.Presenca = null.Float64From(round1((1 - card.Faltas.Float64/card.AulasAno.Float64) * 100))
		}

		if card.MediaGeral.Valid && card.MediaGeral.Float64 >= conf.PassingGrade {
			card.Status = StatusApproved
		} else {
			card.Status = StatusFailed
		}

		cards = append(cards, card)
	}
	return cards
}

type (
	// SchoolSummary aggregates a processed report-card table for display:
	// the approval split, the top students and the grade-level ranking.
	SchoolSummary struct {
		Approved      int             `json:"approved"`
		Failed        int             `json:"failed"`
		TopStudents   []ReportCard    `json:"topStudents"`
		SeriesRanking []SeriesAverage `json:"seriesRanking"`
	}

	SeriesAverage struct {
		Serie      string  `json:"serie"`
		MediaGeral float64 `json:"mediaGeral"`
	}
)

// BuildSchoolSummary ranks students by overall average (cards without one are
// left out of the rankings) and grade levels by their mean overall average.
func BuildSchoolSummary(cards []ReportCard, topN int) SchoolSummary {
	var summary SchoolSummary

	ranked := make([]ReportCard, 0, len(cards))
	for _, c := range cards {
		switch c.Status {
		case StatusApproved:
			summary.Approved++
		case StatusFailed:
			summary.Failed++
		}
		if c.MediaGeral.Valid {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MediaGeral.Float64 > ranked[j].MediaGeral.Float64
	})
	if len(ranked) > topN {
		summary.TopStudents = ranked[:topN]
	} else {
		summary.TopStudents = ranked
	}

	serieSums := make(map[string]*SeriesAverage)
	serieCounts := make(map[string]int)
	var serieOrder []string
	for _, c := range ranked {
		if c.Serie == "" {
			continue
		}
		if _, ok := serieSums[c.Serie]; !ok {
			serieSums[c.Serie] = &SeriesAverage{Serie: c.Serie}
			serieOrder = append(serieOrder, c.Serie)
		}
		serieSums[c.Serie].MediaGeral += c.MediaGeral.Float64
		serieCounts[c.Serie]++
	}
	for _, serie := range serieOrder {
		avg := *serieSums[serie]
		avg.MediaGeral = round1(avg.MediaGeral / float64(serieCounts[serie]))
		summary.SeriesRanking = append(summary.SeriesRanking, avg)
	}
	sort.SliceStable(summary.SeriesRanking, func(i, j int) bool {
		return summary.SeriesRanking[i].MediaGeral > summary.SeriesRanking[j].MediaGeral
	})

	return summary
}
