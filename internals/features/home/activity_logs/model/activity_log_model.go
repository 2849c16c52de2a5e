package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLogModel append-only; tidak pernah dihapus oleh cascade manapun.
type ActivityLogModel struct {
	ActivityLogID         uint           `gorm:"column:activity_log_id;primaryKey;autoIncrement" json:"activity_log_id"`
	ActivityLogUserID     string         `gorm:"column:activity_log_user_id;type:varchar(64);not null;index:idx_activity_logs_user" json:"activity_log_user_id"`
	ActivityLogAction     string         `gorm:"column:activity_log_action;type:varchar(64);not null" json:"activity_log_action"`
	ActivityLogEntityType string         `gorm:"column:activity_log_entity_type;type:varchar(64);not null;index:idx_activity_logs_entity,priority:1" json:"activity_log_entity_type"`
	ActivityLogEntityID   *uint          `gorm:"column:activity_log_entity_id;index:idx_activity_logs_entity,priority:2" json:"activity_log_entity_id,omitempty"`
	ActivityLogDetails    datatypes.JSON `gorm:"column:activity_log_details" json:"activity_log_details,omitempty"`
	ActivityLogCreatedAt  time.Time      `gorm:"column:activity_log_created_at;not null;autoCreateTime" json:"activity_log_created_at"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }
