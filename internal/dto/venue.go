package dto

// ── 考场模块 DTO ──

// CreateVenueRequest 创建考场请求
type CreateVenueRequest struct {
	Name       string   `json:"name"       binding:"required,max=100"`
	Capacity   int      `json:"capacity"   binding:"omitempty,min=0,max=100000"`
	Building   string   `json:"building"   binding:"required,max=100"`
	Floor      string   `json:"floor"      binding:"omitempty,max=50"`
	Type       string   `json:"type"       binding:"omitempty,oneof=classroom hall lab auditorium"`
	Equipment  string   `json:"equipment"  binding:"omitempty,max=500"`
	Status     string   `json:"status"     binding:"omitempty,oneof=available unavailable maintenance"`
	Facilities []string `json:"facilities" binding:"omitempty,dive,max=100"`
}

// UpdateVenueRequest 更新考场请求（可选指针字段）
type UpdateVenueRequest struct {
	Name       *string   `json:"name"       binding:"omitempty,max=100"`
	Capacity   *int      `json:"capacity"   binding:"omitempty,min=0,max=100000"`
	Building   *string   `json:"building"   binding:"omitempty,max=100"`
	Floor      *string   `json:"floor"      binding:"omitempty,max=50"`
	Type       *string   `json:"type"       binding:"omitempty,oneof=classroom hall lab auditorium"`
	Equipment  *string   `json:"equipment"  binding:"omitempty,max=500"`
	Status     *string   `json:"status"     binding:"omitempty,oneof=available unavailable maintenance"`
	Facilities *[]string `json:"facilities" binding:"omitempty,dive,max=100"`
	IsActive   *bool     `json:"is_active"`
}

// VenueListRequest 考场列表查询参数
type VenueListRequest struct {
	PaginationRequest
	Status   string `form:"status"   binding:"omitempty,oneof=available unavailable maintenance"`
	Building string `form:"building" binding:"omitempty,max=100"`
}

// VenueResponse 考场响应
type VenueResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Capacity   int      `json:"capacity"`
	Building   string   `json:"building"`
	Floor      string   `json:"floor,omitempty"`
	Type       string   `json:"type,omitempty"`
	Equipment  string   `json:"equipment,omitempty"`
	Status     string   `json:"status"`
	Facilities []string `json:"facilities"`
	IsActive   bool     `json:"is_active"`
	CreatedAt  string   `json:"created_at"`
}

// VenueBrief 考场简要信息
type VenueBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
}
