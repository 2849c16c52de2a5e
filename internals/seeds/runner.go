package seeds

import (
	"log"
	"time"

	"gorm.io/gorm"

	"disiplinku_backend/internals/seeds/demo"
	"disiplinku_backend/internals/seeds/discipline/action_types"
	"disiplinku_backend/internals/seeds/discipline/violation_types"
)

// RunAllSeeds: katalog jenis pelanggaran & tindakan; withDemo menambah data contoh.
func RunAllSeeds(db *gorm.DB, withDemo bool) error {
	//* Discipline
	if _, err := violation_types.SeedViolationTypes(db); err != nil {
		return err
	}
	if _, err := action_types.SeedActionTypes(db); err != nil {
		return err
	}

	//* Demo
	if withDemo {
		if err := demo.SeedDemo(db, time.Now()); err != nil {
			return err
		}
	}

	log.Println("🌱 Seed selesai")
	return nil
}
