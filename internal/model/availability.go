package model

import "time"

// Availability 可用时间表 — 对应 availabilities
// 仅作申报记录；分配引擎不按可用性过滤（既有行为，见 assignment_service）
type Availability struct {
	AvailabilityID string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	SupervisorID   string       `gorm:"type:uuid;not null;index"                       json:"supervisor_id"`
	Date           time.Time    `gorm:"type:date;not null"                             json:"date"`
	TimeSlots      TimeSlotList `gorm:"type:jsonb;not null;default:'[]'"               json:"time_slots"`
	IsAvailable    bool         `gorm:"not null;default:false"                         json:"is_available"`
	Notes          string       `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	BaseModel

	// 关联
	Supervisor *Supervisor `gorm:"foreignKey:SupervisorID;references:SupervisorID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (Availability) TableName() string { return "availabilities" }
