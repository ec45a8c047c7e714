package model

// 用户角色
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
)

// User 用户表 — 对应 users
// 仅承载身份信息；监考员的业务字段在 Supervisor 中，
// 只有通过 Supervisor 记录才能访问，避免在管理员记录上读到监考员字段。
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Department   string `gorm:"type:varchar(100);not null"                     json:"department"`
	Role         string `gorm:"type:varchar(20);not null;default:'supervisor'" json:"role"` // admin | supervisor
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Supervisor 监考员表 — 对应 supervisors（与 users 1:1）
type Supervisor struct {
	SupervisorID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"supervisor_id"`
	UserID              string      `gorm:"type:uuid;not null;index"                       json:"user_id"`
	FullName            string      `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Phone               string      `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	MaxAssignments      int         `gorm:"not null;default:5"                             json:"max_assignments"`
	MaxDailyAssignments int         `gorm:"not null;default:5"                             json:"max_daily_assignments"`
	TotalAssignments    int         `gorm:"not null;default:0"                             json:"total_assignments"`
	Specializations     StringArray `gorm:"type:text[]"                                    json:"specializations"`
	Status              string      `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | inactive
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Supervisor) TableName() string { return "supervisors" }
