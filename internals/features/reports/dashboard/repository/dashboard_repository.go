// file: internals/features/reports/dashboard/repository/dashboard_repository.go
package repository

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/helpers/dbtime"
)

type DashboardStats struct {
	TotalStudents   int64 `json:"total_students"`
	TodayViolations int64 `json:"today_violations"`
	MonthViolations int64 `json:"month_violations"`
	ActivePlans     int64 `json:"active_plans"`
}

type TopViolatorRow struct {
	StudentID      uint   `gorm:"column:student_id" json:"student_id"`
	StudentName    string `gorm:"column:student_name" json:"student_name"`
	StudentNumber  string `gorm:"column:student_number" json:"student_number"`
	GradeName      string `gorm:"column:grade_name" json:"grade_name"`
	SectionName    string `gorm:"column:section_name" json:"section_name"`
	ViolationCount int64  `gorm:"column:violation_count" json:"violation_count"`
	TotalPoints    int64  `gorm:"column:total_points" json:"total_points"`
}

type CommonViolationRow struct {
	ViolationTypeID *uint  `gorm:"column:violation_type_id" json:"violation_type_id"`
	TypeName        string `gorm:"column:type_name" json:"type_name"`
	Severity        string `gorm:"column:severity" json:"severity"`
	Count           int64  `gorm:"column:violation_count" json:"count"`
	TotalPoints     int64  `gorm:"column:total_points" json:"total_points"`
}

type GradeViolationRow struct {
	GradeID        uint   `gorm:"column:grade_id" json:"grade_id"`
	GradeName      string `gorm:"column:grade_name" json:"grade_name"`
	GradeLevel     int    `gorm:"column:grade_level" json:"grade_level"`
	ViolationCount int64  `gorm:"column:violation_count" json:"violation_count"`
	TotalPoints    int64  `gorm:"column:total_points" json:"total_points"`
}

const (
	DefaultTopLimit = 10
	MaxTopLimit     = 100
	MostCommonLimit = 10
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// violationsOfYear: pelanggaran yang siswanya ada di tahun ajaran yearID.
func (r *DashboardRepository) violationsOfYear(ctx context.Context, yearID uint) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("violations AS v").
		Joins("JOIN students s ON s.student_id = v.violation_student_id").
		Where("s.student_academic_year_id = ?", yearID)
}

// GetDashboardStats: "hari ini" & "bulan ini" dihitung di timezone sekolah.
func (r *DashboardRepository) GetDashboardStats(ctx context.Context, yearID uint, now time.Time) DashboardStats {
	var out DashboardStats
	dayStart, dayEnd := dbtime.DayBounds(now, nil)
	monthStart, monthEnd := dbtime.MonthBounds(now, nil)

	if err := r.DB.WithContext(ctx).Table("students").
		Where("student_academic_year_id = ? AND student_is_active = ?", yearID, true).
		Count(&out.TotalStudents).Error; err != nil {
		log.Printf("[WARN] dashboard total students: %v", err)
	}
	if err := r.violationsOfYear(ctx, yearID).
		Where("v.violation_date >= ? AND v.violation_date < ?", dayStart, dayEnd).
		Count(&out.TodayViolations).Error; err != nil {
		log.Printf("[WARN] dashboard today violations: %v", err)
	}
	if err := r.violationsOfYear(ctx, yearID).
		Where("v.violation_date >= ? AND v.violation_date < ?", monthStart, monthEnd).
		Count(&out.MonthViolations).Error; err != nil {
		log.Printf("[WARN] dashboard month violations: %v", err)
	}
	if err := r.DB.WithContext(ctx).Table("improvement_plans AS p").
		Joins("JOIN students s ON s.student_id = p.improvement_plan_student_id").
		Where("s.student_academic_year_id = ? AND p.improvement_plan_status = ?", yearID, constants.PlanStatusActive).
		Count(&out.ActivePlans).Error; err != nil {
		log.Printf("[WARN] dashboard active plans: %v", err)
	}
	return out
}

// GetTopViolators: siswa dengan ≥1 pelanggaran. Seri dipecah dengan poin, nama, lalu id.
func (r *DashboardRepository) GetTopViolators(ctx context.Context, yearID uint, limit int) []TopViolatorRow {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}
	rows := make([]TopViolatorRow, 0)
	if err := r.violationsOfYear(ctx, yearID).
		Select(`s.student_id, s.student_name, s.student_number,
			COALESCE(g.grade_name, '') AS grade_name, COALESCE(sc.section_name, '') AS section_name,
			COUNT(v.violation_id) AS violation_count,
			COALESCE(SUM(v.violation_points), 0) AS total_points`).
		Joins("LEFT JOIN grades g ON g.grade_id = s.student_grade_id").
		Joins("LEFT JOIN sections sc ON sc.section_id = s.student_section_id").
		Group("s.student_id, s.student_name, s.student_number, g.grade_name, sc.section_name").
		Order("violation_count DESC, total_points DESC, s.student_name ASC, s.student_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] dashboard top violators: %v", err)
		return []TopViolatorRow{}
	}
	return rows
}

// GetMostCommonViolations: dikelompokkan per jenis (snapshot nama & severity).
func (r *DashboardRepository) GetMostCommonViolations(ctx context.Context, yearID uint) []CommonViolationRow {
	rows := make([]CommonViolationRow, 0)
	if err := r.violationsOfYear(ctx, yearID).
		Select(`v.violation_type_id, v.violation_type_name_snapshot AS type_name,
			v.violation_severity_snapshot AS severity,
			COUNT(v.violation_id) AS violation_count,
			COALESCE(SUM(v.violation_points), 0) AS total_points`).
		Group("v.violation_type_id, v.violation_type_name_snapshot, v.violation_severity_snapshot").
		Order("violation_count DESC, type_name ASC").
		Limit(MostCommonLimit).
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] dashboard most common: %v", err)
		return []CommonViolationRow{}
	}
	return rows
}

// GetViolationsByGrade: semua kelas di tahun ajaran, termasuk yang 0 pelanggaran.
func (r *DashboardRepository) GetViolationsByGrade(ctx context.Context, yearID uint) []GradeViolationRow {
	rows := make([]GradeViolationRow, 0)
	if err := r.DB.WithContext(ctx).
		Table("grades AS g").
		Select(`g.grade_id, g.grade_name, g.grade_level,
			COUNT(v.violation_id) AS violation_count,
			COALESCE(SUM(v.violation_points), 0) AS total_points`).
		Joins("LEFT JOIN students s ON s.student_grade_id = g.grade_id").
		Joins("LEFT JOIN violations v ON v.violation_student_id = s.student_id").
		Where("g.grade_academic_year_id = ?", yearID).
		Group("g.grade_id, g.grade_name, g.grade_level").
		Order("g.grade_level ASC, g.grade_name ASC, g.grade_id ASC").
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] dashboard by grade: %v", err)
		return []GradeViolationRow{}
	}
	return rows
}
