package model

import "time"

// 活动类型
const (
	ActivityCreate       = "create"
	ActivityUpdate       = "update"
	ActivityDelete       = "delete"
	ActivityAssign       = "assign"
	ActivityNotification = "notification"
)

// ActivityLogCap 活动日志保留上限（仅保留最近 100 条）
const ActivityLogCap = 100

// ActivityLog 活动日志表 — 对应 activity_logs（追加写，写入时裁剪到上限）
type ActivityLog struct {
	ActivityLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_log_id"`
	Action        string    `gorm:"type:varchar(100);not null"                     json:"action"`
	Description   string    `gorm:"type:varchar(500);not null"                     json:"description"`
	UserID        string    `gorm:"type:varchar(64);not null"                      json:"user_id"`
	UserName      string    `gorm:"type:varchar(100);not null"                     json:"user_name"`
	Timestamp     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"       json:"timestamp"`
	Type          string    `gorm:"type:varchar(20);not null;default:'update'"     json:"type"` // create | update | delete | assign | notification
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_logs" }
