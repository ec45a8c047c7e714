package dto

// ── 监考员模块 DTO ──

// CreateSupervisorRequest 创建监考员请求（同时创建登录账号）
type CreateSupervisorRequest struct {
	Username            string   `json:"username"              binding:"required,min=2,max=100"`
	Email               string   `json:"email"                 binding:"required,email"`
	Department          string   `json:"department"            binding:"required,max=100"`
	FullName            string   `json:"full_name"             binding:"required,max=100"`
	Phone               string   `json:"phone"                 binding:"omitempty,max=30"`
	MaxAssignments      int      `json:"max_assignments"       binding:"omitempty,min=1,max=50"`
	MaxDailyAssignments int      `json:"max_daily_assignments" binding:"omitempty,min=1,max=20"`
	Specializations     []string `json:"specializations"       binding:"omitempty,dive,max=100"`
	Status              string   `json:"status"                binding:"omitempty,oneof=active inactive"`
	Password            string   `json:"password"              binding:"omitempty,min=6,max=72"`
}

// UpdateSupervisorRequest 更新监考员请求
// 字段均为可选指针，仅更新显式提交的字段（不接受未知字段的宽松合并）
type UpdateSupervisorRequest struct {
	FullName            *string   `json:"full_name"             binding:"omitempty,max=100"`
	Phone               *string   `json:"phone"                 binding:"omitempty,max=30"`
	Department          *string   `json:"department"            binding:"omitempty,max=100"`
	MaxAssignments      *int      `json:"max_assignments"       binding:"omitempty,min=1,max=50"`
	MaxDailyAssignments *int      `json:"max_daily_assignments" binding:"omitempty,min=1,max=20"`
	Specializations     *[]string `json:"specializations"       binding:"omitempty,dive,max=100"`
	Status              *string   `json:"status"                binding:"omitempty,oneof=active inactive"`
}

// SupervisorListRequest 监考员列表查询参数
type SupervisorListRequest struct {
	PaginationRequest
	Status     string `form:"status"     binding:"omitempty,oneof=active inactive"`
	Department string `form:"department" binding:"omitempty,max=100"`
	Keyword    string `form:"keyword"    binding:"omitempty,max=50"`
}

// SupervisorResponse 监考员响应
type SupervisorResponse struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"user_id"`
	Username            string   `json:"username,omitempty"`
	Email               string   `json:"email,omitempty"`
	Department          string   `json:"department,omitempty"`
	FullName            string   `json:"full_name"`
	Phone               string   `json:"phone,omitempty"`
	MaxAssignments      int      `json:"max_assignments"`
	MaxDailyAssignments int      `json:"max_daily_assignments"`
	TotalAssignments    int      `json:"total_assignments"`
	Specializations     []string `json:"specializations"`
	Status              string   `json:"status"`
	CreatedAt           string   `json:"created_at"`
}
