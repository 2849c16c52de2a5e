package service

import (
	"context"
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"disiplinku_backend/internals/features/home/activity_logs/model"
	"disiplinku_backend/internals/features/home/activity_logs/repository"
)

// Record mencatat aksi user setelah write berhasil. Best-effort: kegagalan hanya di-log.
func Record(ctx context.Context, db *gorm.DB, userID *string, action, entityType string, entityID uint, details any) {
	if userID == nil || *userID == "" {
		return
	}
	m := model.ActivityLogModel{
		ActivityLogUserID:     *userID,
		ActivityLogAction:     action,
		ActivityLogEntityType: entityType,
	}
	if entityID > 0 {
		id := entityID
		m.ActivityLogEntityID = &id
	}
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			m.ActivityLogDetails = datatypes.JSON(b)
		}
	}
	if _, err := repository.NewActivityLogRepository(db).Create(ctx, &m); err != nil {
		log.Printf("[WARN] activity log %s/%s gagal: %v", entityType, action, err)
	}
}
