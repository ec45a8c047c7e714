package model

import "time"

// 分配状态
const (
	ScheduleAssigned  = "assigned"
	ScheduleConfirmed = "confirmed"
	ScheduleDeclined  = "declined"
	ScheduleCompleted = "completed"
)

// Schedule 监考分配表 — 对应 schedules
// 一行 = 一个 (考试, 监考员) 绑定。
// supervisor_id 无级联约束：监考员删除后记录允许悬挂（既有行为，刻意保留）。
type Schedule struct {
	ScheduleID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ExamID           string    `gorm:"type:uuid;not null;index"                       json:"exam_id"`
	SupervisorID     string    `gorm:"type:uuid;not null;index"                       json:"supervisor_id"`
	AssignedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"assigned_at"`
	Status           string    `gorm:"type:varchar(20);not null;default:'assigned'"   json:"status"` // assigned | confirmed | declined | completed
	IsMainSupervisor bool      `gorm:"not null;default:false"                         json:"is_main_supervisor"`
	NotificationSent bool      `gorm:"not null;default:false"                         json:"notification_sent"`
	Notes            string    `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	BaseModel

	// 关联
	Exam       *Exam       `gorm:"foreignKey:ExamID;references:ExamID"             json:"exam,omitempty"`
	Supervisor *Supervisor `gorm:"foreignKey:SupervisorID;references:SupervisorID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }
