package violation_types

import (
	_ "embed"
	"encoding/json"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/discipline/violation_types/model"
)

//go:embed data_violation_types.json
var dataViolationTypes []byte

type ViolationTypeSeed struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Points   int    `json:"points"`
}

// SeedViolationTypes: insert yang namanya belum ada. Aman dijalankan berulang.
func SeedViolationTypes(db *gorm.DB) (int, error) {
	var seeds []ViolationTypeSeed
	if err := json.Unmarshal(dataViolationTypes, &seeds); err != nil {
		return 0, errors.Wrap(err, "decode data_violation_types.json")
	}

	var existing []string
	if err := db.Model(&model.ViolationTypeModel{}).
		Pluck("violation_type_name", &existing).Error; err != nil {
		return 0, errors.Wrap(err, "ambil nama violation_types")
	}
	exists := make(map[string]bool, len(existing))
	for _, n := range existing {
		exists[n] = true
	}

	system := "system"
	var rows []model.ViolationTypeModel
	for _, s := range seeds {
		if exists[s.Name] {
			continue
		}
		rows = append(rows, model.ViolationTypeModel{
			ViolationTypeName:      s.Name,
			ViolationTypeSeverity:  s.Severity,
			ViolationTypePoints:    s.Points,
			ViolationTypeIsActive:  true,
			ViolationTypeCreatedBy: &system,
		})
	}

	if len(rows) == 0 {
		log.Println("ℹ️ Tidak ada jenis pelanggaran baru untuk diinsert.")
		return 0, nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, errors.Wrap(err, "bulk insert violation_types")
	}
	log.Printf("✅ Berhasil insert %d jenis pelanggaran", len(rows))
	return len(rows), nil
}
