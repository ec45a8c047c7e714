package dto

// ── 仪表盘 / 报表模块 DTO ──

// DashboardStatsResponse 仪表盘统计（每次读取实时重算）
type DashboardStatsResponse struct {
	TotalExams           int64                 `json:"total_exams"`
	TotalSupervisors     int64                 `json:"total_supervisors"`
	TotalVenues          int64                 `json:"total_venues"`
	ScheduledExams       int64                 `json:"scheduled_exams"`
	AssignedSupervisors  int64                 `json:"assigned_supervisors"`
	AvailableSupervisors int64                 `json:"available_supervisors"`
	Conflicts            int                   `json:"conflicts"` // 冲突检测未实现，恒为 0
	RecentActivity       []ActivityLogResponse `json:"recent_activity"`
}

// ActivityLogResponse 活动日志响应
type ActivityLogResponse struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type"`
}

// SchedulingConflict 排班冲突
// 类型已定义但检测逻辑未实现（显式缺口）：/dashboard/conflicts 恒返回空列表
type SchedulingConflict struct {
	Type          string   `json:"type"` // time_conflict | venue_conflict | supervisor_overload
	Message       string   `json:"message"`
	ExamIDs       []string `json:"exam_ids"`
	SupervisorIDs []string `json:"supervisor_ids,omitempty"`
	VenueIDs      []string `json:"venue_ids,omitempty"`
	Severity      string   `json:"severity"` // low | medium | high
}

// SupervisorWorkload 单个监考员工作量
type SupervisorWorkload struct {
	SupervisorID   string  `json:"supervisor_id"`
	FullName       string  `json:"full_name"`
	Department     string  `json:"department"`
	Assignments    int     `json:"assignments"`
	MaxAssignments int     `json:"max_assignments"`
	Utilization    float64 `json:"utilization"` // assignments / max * 100
}

// VenueUsage 单个考场使用情况
type VenueUsage struct {
	VenueID  string `json:"venue_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Exams    int    `json:"exams"`
}

// WorkloadReportResponse 工作量报表
type WorkloadReportResponse struct {
	UtilizationRate     float64              `json:"utilization_rate"` // 有分配的监考员占比（%）
	Supervisors         []SupervisorWorkload `json:"supervisors"`
	DepartmentBreakdown map[string]int       `json:"department_breakdown"`
	MonthlyDistribution map[string]int       `json:"monthly_distribution"` // "2025-06" → 场次
	TotalAssignments    int64                `json:"total_assignments"`
}

// VenueReportResponse 考场使用报表
type VenueReportResponse struct {
	Venues []VenueUsage `json:"venues"`
}
