package model

// Venue 考场表 — 对应 venues
type Venue struct {
	VenueID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"venue_id"`
	Name       string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Capacity   int         `gorm:"not null;default:0"                             json:"capacity"`
	Building   string      `gorm:"type:varchar(100);not null"                     json:"building"`
	Floor      string      `gorm:"type:varchar(50)"                               json:"floor,omitempty"`
	Type       string      `gorm:"type:varchar(20)"                               json:"type,omitempty"` // classroom | hall | lab | auditorium
	Equipment  string      `gorm:"type:varchar(500)"                              json:"equipment,omitempty"`
	Status     string      `gorm:"type:varchar(20);not null;default:'available'"  json:"status"` // available | unavailable | maintenance
	Facilities StringArray `gorm:"type:text[]"                                    json:"facilities"`
	IsActive   bool        `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Venue) TableName() string { return "venues" }
