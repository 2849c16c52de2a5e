package demo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	ayModel "disiplinku_backend/internals/features/academics/academic_years/model"
	ayRepo "disiplinku_backend/internals/features/academics/academic_years/repository"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	gradeRepo "disiplinku_backend/internals/features/academics/grades/repository"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	sectionRepo "disiplinku_backend/internals/features/academics/sections/repository"
	vtModel "disiplinku_backend/internals/features/discipline/violation_types/model"
	violationRepo "disiplinku_backend/internals/features/discipline/violations/repository"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	studentRepo "disiplinku_backend/internals/features/students/students/repository"
	"disiplinku_backend/internals/helpers/dbtime"
)

const DemoYearName = "2024-2025"

var gradeNames = []string{
	"الصف الأول الابتدائي",
	"الصف الثاني الابتدائي",
	"الصف الثالث الابتدائي",
	"الصف الرابع الابتدائي",
	"الصف الخامس الابتدائي",
	"الصف السادس الابتدائي",
	"الصف الأول المتوسط",
	"الصف الثاني المتوسط",
	"الصف الثالث المتوسط",
}

var sectionNames = []string{"أ", "ب", "ج"}

var studentNames = []string{
	"عبدالله محمد الأحمد", "سعود خالد العتيبي", "فهد عبدالعزيز القحطاني",
	"محمد سعد الغامدي", "عمر أحمد الشهري", "يوسف علي الدوسري",
	"خالد فهد المطيري", "ناصر سلطان الحربي", "تركي عبدالرحمن السبيعي",
	"بندر ماجد الزهراني", "سلطان فيصل العنزي", "راشد محمد الرشيدي",
	"مشعل عبدالله العمري", "نواف سعود الشمري", "عادل خالد البقمي",
	"ماجد فهد الجهني", "طلال عبدالعزيز الخالدي", "وليد أحمد السهلي",
	"حمد سعد اليامي", "عبدالرحمن علي الفهد", "صالح محمد النمري",
	"إبراهيم خالد الصالح", "أحمد عبدالله المنصور", "حسن سعود الحسن",
	"علي فهد العلي", "منصور عبدالعزيز المنصور", "سامي أحمد السامي",
	"زياد محمد الزياد", "فيصل خالد الفيصل", "عبدالإله سعد العبدالإله",
}

const demoViolations = 50

// SeedDemo: tahun ajaran aktif + kelas/section + siswa + pelanggaran 60 hari terakhir.
// Dilewati kalau tahun ajaran demo sudah ada. Jenis pelanggaran harus sudah di-seed.
func SeedDemo(db *gorm.DB, now time.Time) error {
	ctx := context.Background()

	var n int64
	if err := db.Model(&ayModel.AcademicYearModel{}).
		Where("academic_year_name = ?", DemoYearName).
		Count(&n).Error; err != nil {
		return errors.Wrap(err, "cek tahun ajaran demo")
	}
	if n > 0 {
		log.Println("ℹ️ Data demo sudah ada, dilewati.")
		return nil
	}

	var types []vtModel.ViolationTypeModel
	if err := db.Where("violation_type_is_active = ?", true).
		Order("violation_type_id ASC").Find(&types).Error; err != nil {
		return errors.Wrap(err, "ambil jenis pelanggaran")
	}
	if len(types) == 0 {
		return errors.New("jenis pelanggaran kosong, jalankan seed dasar dulu")
	}

	start, _ := dbtime.ParseDate("2024-09-01", nil)
	end, _ := dbtime.ParseDate("2025-06-30", nil)
	system := "system"

	yearID, err := ayRepo.NewAcademicYearRepository(db).Create(ctx, &ayModel.AcademicYearModel{
		AcademicYearName:      DemoYearName,
		AcademicYearStartDate: start,
		AcademicYearEndDate:   end,
		AcademicYearIsActive:  true,
		AcademicYearCreatedBy: &system,
	})
	if err != nil {
		return err
	}

	grades := gradeRepo.NewGradeRepository(db)
	sections := sectionRepo.NewSectionRepository(db)
	type placement struct{ gradeID, sectionID uint }
	var places [][]placement // [grade][section]
	for i, name := range gradeNames {
		gid, err := grades.Create(ctx, &gradeModel.GradeModel{
			GradeName:           name,
			GradeLevel:          i + 1,
			GradeAcademicYearID: yearID,
		})
		if err != nil {
			return err
		}
		row := make([]placement, 0, len(sectionNames))
		for _, sn := range sectionNames {
			sid, err := sections.Create(ctx, &sectionModel.SectionModel{SectionName: sn, SectionGradeID: gid})
			if err != nil {
				return err
			}
			row = append(row, placement{gid, sid})
		}
		places = append(places, row)
	}
	log.Printf("📚 %d kelas × %d section dibuat", len(gradeNames), len(sectionNames))

	students := studentRepo.NewStudentRepository(db)
	ids := make([]uint, 0, len(studentNames))
	for i, name := range studentNames {
		p := places[i%len(gradeNames)][(i/len(gradeNames))%len(sectionNames)]
		guardian := "ولي أمر " + strings.Fields(name)[0]
		phone := fmt.Sprintf("05%08d", 10000000+i*2654435%90000000)
		id, err := students.Create(ctx, &studentModel.StudentModel{
			StudentNumber:        fmt.Sprintf("STD2024%04d", i+1),
			StudentName:          name,
			StudentGradeID:       p.gradeID,
			StudentSectionID:     p.sectionID,
			StudentGuardianName:  &guardian,
			StudentGuardianPhone: &phone,
			StudentIsActive:      true,
			StudentCreatedBy:     &system,
		})
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	log.Printf("👨‍🎓 %d siswa dibuat", len(ids))

	violations := violationRepo.NewViolationRepository(db)
	for i := 0; i < demoViolations; i++ {
		if _, err := violations.Record(ctx, violationRepo.RecordInput{
			StudentID: ids[(i*7)%len(ids)],
			TypeID:    types[(i*5)%len(types)].ViolationTypeID,
			Date:      now.AddDate(0, 0, -((i * 11) % 60)),
			CreatedBy: &system,
		}); err != nil {
			return err
		}
	}
	log.Printf("⚠️ %d pelanggaran demo dibuat", demoViolations)
	return nil
}
