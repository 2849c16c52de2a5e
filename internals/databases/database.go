package database

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"disiplinku_backend/internals/configs"
	ayModel "disiplinku_backend/internals/features/academics/academic_years/model"
	gradeModel "disiplinku_backend/internals/features/academics/grades/model"
	sectionModel "disiplinku_backend/internals/features/academics/sections/model"
	actionTypeModel "disiplinku_backend/internals/features/discipline/action_types/model"
	actionModel "disiplinku_backend/internals/features/discipline/disciplinary_actions/model"
	planModel "disiplinku_backend/internals/features/discipline/improvement_plans/model"
	violationTypeModel "disiplinku_backend/internals/features/discipline/violation_types/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	activityModel "disiplinku_backend/internals/features/home/activity_logs/model"
	notifModel "disiplinku_backend/internals/features/home/notifications/model"
	commModel "disiplinku_backend/internals/features/students/guardian_communications/model"
	studentModel "disiplinku_backend/internals/features/students/students/model"
	authModel "disiplinku_backend/internals/features/users/auth/model"
	userModel "disiplinku_backend/internals/features/users/users/model"
)

var DB *gorm.DB

func ConnectDB(cfg *configs.Config) {
	log.Println("[INFO] Koneksi ke PostgreSQL...")

	level := gormLogger.Warn
	if !cfg.IsProduction() {
		level = gormLogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // aman untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.DBSlowThreshold, level),
	})
	if err != nil {
		log.Fatalf("[ERROR] Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(DB); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
			return
		}
		// query paling sering: tahun ajaran aktif
		var n int64
		DB.Model(&ayModel.AcademicYearModel{}).
			Where("academic_year_is_active = ?", true).
			Count(&n)
	}()
}

func Ping(db *gorm.DB) error {
	return PingContext(context.Background(), db)
}

func PingContext(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("db belum diinisialisasi")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Models berurutan dari parent ke child, dipakai AutoMigrate.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&ayModel.AcademicYearModel{},
		&gradeModel.GradeModel{},
		&sectionModel.SectionModel{},
		&studentModel.StudentModel{},
		&violationTypeModel.ViolationTypeModel{},
		&violationModel.ViolationModel{},
		&actionTypeModel.ActionTypeModel{},
		&actionModel.DisciplinaryActionModel{},
		&planModel.ImprovementPlanModel{},
		&planModel.PlanFollowUpModel{},
		&commModel.GuardianCommunicationModel{},
		&notifModel.NotificationModel{},
		&activityModel.ActivityLogModel{},
		&authModel.TokenBlacklistModel{},
	}
}

// Migrate membuat/menyesuaikan tabel + index yang tidak bisa dinyatakan lewat tag.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	// Maksimal satu tahun ajaran aktif.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_academic_years_single_active
		ON academic_years (academic_year_is_active)
		WHERE academic_year_is_active`).Error; err != nil {
		return errors.Wrap(err, "create uq_academic_years_single_active")
	}

	// Satu email satu akun; NULL boleh berulang.
	if err := db.Exec(`DROP INDEX IF EXISTS idx_users_email`).Error; err != nil {
		return errors.Wrap(err, "drop idx_users_email")
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email
		ON users (user_email)
		WHERE user_email IS NOT NULL`).Error; err != nil {
		return errors.Wrap(err, "create uq_users_email")
	}
	return nil
}
