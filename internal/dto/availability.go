package dto

// ── 可用时间模块 DTO ──

// TimeSlotInput 时间窗口
type TimeSlotInput struct {
	StartTime   string `json:"start_time"   binding:"required,datetime=15:04"`
	EndTime     string `json:"end_time"     binding:"required,datetime=15:04"`
	IsAvailable bool   `json:"is_available"`
}

// SetAvailabilityRequest 申报可用时间请求
type SetAvailabilityRequest struct {
	SupervisorID string          `json:"supervisor_id" binding:"omitempty,uuid"` // 管理员可代为申报；监考员忽略此字段
	Date         string          `json:"date"          binding:"required,datetime=2006-01-02"`
	TimeSlots    []TimeSlotInput `json:"time_slots"    binding:"omitempty,dive"`
	IsAvailable  bool            `json:"is_available"`
	Notes        string          `json:"notes"         binding:"omitempty,max=500"`
}

// ImportAvailabilityRequest 从 iCalendar 导入不可用时间请求
// feed 中的每个事件会生成一条 is_available=false 的记录
type ImportAvailabilityRequest struct {
	URL          string `json:"url"           binding:"omitempty,url"`
	Content      string `json:"content"       binding:"omitempty"` // 直接提交 ICS 文本
	SupervisorID string `json:"supervisor_id" binding:"omitempty,uuid"`
	Days         int    `json:"days"          binding:"omitempty,min=1,max=365"` // 导入时间范围（默认 90 天）
}

// ImportAvailabilityResponse 导入结果
type ImportAvailabilityResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// AvailabilityListRequest 可用时间列表查询参数
type AvailabilityListRequest struct {
	PaginationRequest
	SupervisorID string `form:"supervisor_id" binding:"omitempty,uuid"`
	Date         string `form:"date"          binding:"omitempty,datetime=2006-01-02"`
}

// AvailabilityResponse 可用时间响应
type AvailabilityResponse struct {
	ID           string          `json:"id"`
	SupervisorID string          `json:"supervisor_id"`
	Date         string          `json:"date"`
	TimeSlots    []TimeSlotInput `json:"time_slots"`
	IsAvailable  bool            `json:"is_available"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    string          `json:"created_at"`
}
