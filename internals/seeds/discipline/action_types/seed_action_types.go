package action_types

import (
	_ "embed"
	"encoding/json"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/discipline/action_types/model"
)

//go:embed data_action_types.json
var dataActionTypes []byte

type ActionTypeSeed struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

func SeedActionTypes(db *gorm.DB) (int, error) {
	var seeds []ActionTypeSeed
	if err := json.Unmarshal(dataActionTypes, &seeds); err != nil {
		return 0, errors.Wrap(err, "decode data_action_types.json")
	}

	var existing []string
	if err := db.Model(&model.ActionTypeModel{}).
		Pluck("action_type_name", &existing).Error; err != nil {
		return 0, errors.Wrap(err, "ambil nama action_types")
	}
	exists := make(map[string]bool, len(existing))
	for _, n := range existing {
		exists[n] = true
	}

	var rows []model.ActionTypeModel
	for _, s := range seeds {
		if exists[s.Name] {
			continue
		}
		rows = append(rows, model.ActionTypeModel{
			ActionTypeName:     s.Name,
			ActionTypeSeverity: s.Severity,
			ActionTypeIsActive: true,
		})
	}

	if len(rows) == 0 {
		log.Println("ℹ️ Tidak ada jenis tindakan baru untuk diinsert.")
		return 0, nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, errors.Wrap(err, "bulk insert action_types")
	}
	log.Printf("✅ Berhasil insert %d jenis tindakan", len(rows))
	return len(rows), nil
}
