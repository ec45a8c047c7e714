package model

import "time"

// 考试状态
const (
	ExamScheduled = "scheduled"
	ExamOngoing   = "ongoing"
	ExamCompleted = "completed"
	ExamCancelled = "cancelled"
)

// Exam 考试表 — 对应 exams
type Exam struct {
	ExamID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	CourseCode        string    `gorm:"type:varchar(50);not null"                      json:"course_code"`
	CourseName        string    `gorm:"type:varchar(200);not null;default:''"          json:"course_name"`
	Date              time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime         string    `gorm:"type:varchar(5);not null"                       json:"start_time"` // "HH:MM"
	EndTime           string    `gorm:"type:varchar(5);not null;default:''"            json:"end_time"`
	Duration          int       `gorm:"default:null"                                   json:"duration,omitempty"` // 分钟
	VenueID           string    `gorm:"type:uuid;not null;index"                       json:"venue_id"`
	ExpectedStudents  int       `gorm:"default:null"                                   json:"expected_students,omitempty"`
	SupervisorsNeeded int       `gorm:"not null;default:2"                             json:"supervisors_needed"`
	Department        string    `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	Status            string    `gorm:"type:varchar(20);not null;default:'scheduled'"  json:"status"` // scheduled | ongoing | completed | cancelled
	BaseModel

	// 关联
	Venue *Venue `gorm:"foreignKey:VenueID;references:VenueID" json:"venue,omitempty"`
}

// TableName 指定表名
func (Exam) TableName() string { return "exams" }
