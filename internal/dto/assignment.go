package dto

// ── 监考分配模块 DTO ──

// AutoAssignRequest 自动分配请求
type AutoAssignRequest struct {
	ExamID string `json:"exam_id" binding:"required,uuid"`
}

// AutoAssignResponse 自动分配结果
type AutoAssignResponse struct {
	ExamID    string             `json:"exam_id"`
	Assigned  int                `json:"assigned"`
	Schedules []ScheduleResponse `json:"schedules"`
}

// ManualAssignRequest 手动分配请求
type ManualAssignRequest struct {
	ExamID       string `json:"exam_id"       binding:"required,uuid"`
	SupervisorID string `json:"supervisor_id" binding:"required,uuid"`
}

// BulkGenerateResponse 批量生成结果
// 逐场考试顺序执行自动分配；单场失败不中断，计入 failed
type BulkGenerateResponse struct {
	ExamsProcessed int      `json:"exams_processed"`
	ExamsAssigned  int      `json:"exams_assigned"`
	ExamsSkipped   int      `json:"exams_skipped"`
	ExamsFailed    int      `json:"exams_failed"`
	Failures       []string `json:"failures,omitempty"` // 失败场次的课程代码及原因
}

// UpdateScheduleStatusRequest 更新分配状态请求
// 不做状态机校验：四种状态均可直接写入（既有行为）
type UpdateScheduleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=assigned confirmed declined completed"`
	Notes  string `json:"notes"  binding:"omitempty,max=500"`
}

// NotifyAssignmentsRequest 发送分配通知请求（仅置位 notification_sent，无真实投递）
type NotifyAssignmentsRequest struct {
	ScheduleIDs []string `json:"schedule_ids" binding:"required,min=1,dive,uuid"`
}

// NotifyAssignmentsResponse 通知结果
type NotifyAssignmentsResponse struct {
	Notified int `json:"notified"`
}

// ScheduleListRequest 分配列表查询参数
type ScheduleListRequest struct {
	PaginationRequest
	ExamID       string `form:"exam_id"       binding:"omitempty,uuid"`
	SupervisorID string `form:"supervisor_id" binding:"omitempty,uuid"`
	Status       string `form:"status"        binding:"omitempty,oneof=assigned confirmed declined completed"`
}

// ScheduleResponse 监考分配响应
type ScheduleResponse struct {
	ID               string              `json:"id"`
	ExamID           string              `json:"exam_id"`
	Exam             *ExamResponse       `json:"exam,omitempty"`
	SupervisorID     string              `json:"supervisor_id"`
	Supervisor       *SupervisorResponse `json:"supervisor,omitempty"`
	AssignedAt       string              `json:"assigned_at"`
	Status           string              `json:"status"`
	IsMainSupervisor bool                `json:"is_main_supervisor"`
	NotificationSent bool                `json:"notification_sent"`
	Notes            string              `json:"notes,omitempty"`
}
