// file: internals/features/reports/reports/repository/report_repository.go
package repository

import (
	"context"
	"math"
	"sort"

	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	yearModel "disiplinku_backend/internals/features/academics/academic_years/model"
	yearRepo "disiplinku_backend/internals/features/academics/academic_years/repository"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	gradeRepo "disiplinku_backend/internals/features/academics/grades/repository"
	violationRepo "disiplinku_backend/internals/features/discipline/violations/repository"
	studentRepo "disiplinku_backend/internals/features/students/students/repository"
)

/* =======================================================
   SHAPES
   ======================================================= */

type SeverityCounts struct {
	Minor    int64 `json:"minor"`
	Moderate int64 `json:"moderate"`
	Severe   int64 `json:"severe"`
}

type Summary struct {
	Count         int64          `json:"count"`
	TotalPoints   int64          `json:"total_points"`
	AveragePoints float64        `json:"average_points"`
	BySeverity    SeverityCounts `json:"by_severity"`
}

type StudentBreakdown struct {
	StudentID     uint   `json:"student_id"`
	StudentName   string `json:"student_name"`
	StudentNumber string `json:"student_number"`
	GradeName     string `json:"grade_name"`
	SectionName   string `json:"section_name"`
	Count         int64  `json:"count"`
	TotalPoints   int64  `json:"total_points"`
}

type GradeBreakdown struct {
	GradeID     uint   `json:"grade_id"`
	GradeName   string `json:"grade_name"`
	GradeLevel  int    `json:"grade_level"`
	Count       int64  `json:"count"`
	TotalPoints int64  `json:"total_points"`
}

type StudentReport struct {
	Student    *studentRepo.StudentRow      `json:"student"`
	Summary    Summary                      `json:"summary"`
	Violations []violationRepo.ViolationRow `json:"violations"`
}

type GradeReport struct {
	Grade      *gradeModel.GradeModel       `json:"grade"`
	Summary    Summary                      `json:"summary"`
	Students   []StudentBreakdown           `json:"students"`
	Violations []violationRepo.ViolationRow `json:"violations"`
}

type SchoolReport struct {
	AcademicYear *yearModel.AcademicYearModel `json:"academic_year"`
	Summary      Summary                      `json:"summary"`
	Grades       []GradeBreakdown             `json:"grades"`
	Students     []StudentBreakdown           `json:"students"`
	Violations   []violationRepo.ViolationRow `json:"violations"`
}

/* =======================================================
   AGGREGATES (murni, tanpa DB)
   ======================================================= */

// Summarize: rata-rata dibulatkan 2 desimal, 0 kalau kosong.
func Summarize(rows []violationRepo.ViolationRow) Summary {
	var s Summary
	for _, v := range rows {
		s.Count++
		s.TotalPoints += int64(v.ViolationPoints)
		switch v.ViolationSeveritySnapshot {
		case constants.SeverityMinor:
			s.BySeverity.Minor++
		case constants.SeverityModerate:
			s.BySeverity.Moderate++
		case constants.SeveritySevere:
			s.BySeverity.Severe++
		}
	}
	if s.Count > 0 {
		s.AveragePoints = math.Round(float64(s.TotalPoints)/float64(s.Count)*100) / 100
	}
	return s
}

// BreakdownByStudent: count desc, poin desc, nama, id.
func BreakdownByStudent(rows []violationRepo.ViolationRow) []StudentBreakdown {
	idx := map[uint]int{}
	out := make([]StudentBreakdown, 0)
	for _, v := range rows {
		i, ok := idx[v.ViolationStudentID]
		if !ok {
			out = append(out, StudentBreakdown{
				StudentID:     v.ViolationStudentID,
				StudentName:   v.StudentName,
				StudentNumber: v.StudentNumber,
				GradeName:     v.GradeName,
				SectionName:   v.SectionName,
			})
			i = len(out) - 1
			idx[v.ViolationStudentID] = i
		}
		out[i].Count++
		out[i].TotalPoints += int64(v.ViolationPoints)
	}
	sort.SliceStable(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.Count != y.Count {
			return x.Count > y.Count
		}
		if x.TotalPoints != y.TotalPoints {
			return x.TotalPoints > y.TotalPoints
		}
		if x.StudentName != y.StudentName {
			return x.StudentName < y.StudentName
		}
		return x.StudentID < y.StudentID
	})
	return out
}

// BreakdownByGrade: mulai dari daftar kelas supaya kelas tanpa pelanggaran tetap muncul.
func BreakdownByGrade(grades []gradeRepo.GradeRow, rows []violationRepo.ViolationRow) []GradeBreakdown {
	idx := map[uint]int{}
	out := make([]GradeBreakdown, 0, len(grades))
	for _, g := range grades {
		idx[g.GradeID] = len(out)
		out = append(out, GradeBreakdown{GradeID: g.GradeID, GradeName: g.GradeName, GradeLevel: g.GradeLevel})
	}
	for _, v := range rows {
		i, ok := idx[v.GradeID]
		if !ok {
			idx[v.GradeID] = len(out)
			out = append(out, GradeBreakdown{GradeID: v.GradeID, GradeName: v.GradeName, GradeLevel: v.GradeLevel})
			i = len(out) - 1
		}
		out[i].Count++
		out[i].TotalPoints += int64(v.ViolationPoints)
	}
	sort.SliceStable(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.GradeLevel != y.GradeLevel {
			return x.GradeLevel < y.GradeLevel
		}
		if x.GradeName != y.GradeName {
			return x.GradeName < y.GradeName
		}
		return x.GradeID < y.GradeID
	})
	return out
}

/* =======================================================
   REPOSITORY
   ======================================================= */

type ReportRepository struct {
	DB         *gorm.DB
	Violations *violationRepo.ViolationRepository
	Students   *studentRepo.StudentRepository
	Grades     *gradeRepo.GradeRepository
	Years      *yearRepo.AcademicYearRepository
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		DB:         db,
		Violations: violationRepo.NewViolationRepository(db),
		Students:   studentRepo.NewStudentRepository(db),
		Grades:     gradeRepo.NewGradeRepository(db),
		Years:      yearRepo.NewAcademicYearRepository(db),
	}
}

// StudentReport: nil kalau siswa tidak ada.
func (r *ReportRepository) StudentReport(ctx context.Context, studentID uint) *StudentReport {
	st := r.Students.GetByID(ctx, studentID)
	if st == nil {
		return nil
	}
	rows := r.Violations.Search(ctx, violationRepo.ViolationFilter{StudentID: &studentID})
	return &StudentReport{Student: st, Summary: Summarize(rows), Violations: rows}
}

func (r *ReportRepository) GradeReport(ctx context.Context, gradeID uint) *GradeReport {
	g := r.Grades.GetByID(ctx, gradeID)
	if g == nil {
		return nil
	}
	rows := r.Violations.Search(ctx, violationRepo.ViolationFilter{GradeID: &gradeID})
	return &GradeReport{
		Grade:      g,
		Summary:    Summarize(rows),
		Students:   BreakdownByStudent(rows),
		Violations: rows,
	}
}

func (r *ReportRepository) SchoolReport(ctx context.Context, yearID uint) *SchoolReport {
	y := r.Years.GetByID(ctx, yearID)
	if y == nil {
		return nil
	}
	rows := r.Violations.Search(ctx, violationRepo.ViolationFilter{AcademicYearID: &yearID})
	return &SchoolReport{
		AcademicYear: y,
		Summary:      Summarize(rows),
		Grades:       BreakdownByGrade(r.Grades.GetByAcademicYear(ctx, yearID), rows),
		Students:     BreakdownByStudent(rows),
		Violations:   rows,
	}
}
