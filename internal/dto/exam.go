package dto

// ── 考试模块 DTO ──

// CreateExamRequest 创建考试请求
// course_code / date / start_time / venue_id 为必填（与表单校验一致）
type CreateExamRequest struct {
	CourseCode        string `json:"course_code"        binding:"required,max=50"`
	CourseName        string `json:"course_name"        binding:"omitempty,max=200"`
	Date              string `json:"date"               binding:"required,datetime=2006-01-02"`
	StartTime         string `json:"start_time"         binding:"required,datetime=15:04"`
	EndTime           string `json:"end_time"           binding:"omitempty,datetime=15:04"`
	Duration          int    `json:"duration"           binding:"omitempty,min=1,max=600"`
	VenueID           string `json:"venue_id"           binding:"required,uuid"`
	ExpectedStudents  int    `json:"expected_students"  binding:"omitempty,min=0"`
	SupervisorsNeeded int    `json:"supervisors_needed" binding:"omitempty,min=1,max=20"`
	Department        string `json:"department"         binding:"omitempty,max=100"`
}

// UpdateExamRequest 更新考试请求（可选指针字段）
type UpdateExamRequest struct {
	CourseCode        *string `json:"course_code"        binding:"omitempty,max=50"`
	CourseName        *string `json:"course_name"        binding:"omitempty,max=200"`
	Date              *string `json:"date"               binding:"omitempty,datetime=2006-01-02"`
	StartTime         *string `json:"start_time"         binding:"omitempty,datetime=15:04"`
	EndTime           *string `json:"end_time"           binding:"omitempty,datetime=15:04"`
	Duration          *int    `json:"duration"           binding:"omitempty,min=1,max=600"`
	VenueID           *string `json:"venue_id"           binding:"omitempty,uuid"`
	ExpectedStudents  *int    `json:"expected_students"  binding:"omitempty,min=0"`
	SupervisorsNeeded *int    `json:"supervisors_needed" binding:"omitempty,min=1,max=20"`
	Department        *string `json:"department"         binding:"omitempty,max=100"`
	Status            *string `json:"status"             binding:"omitempty,oneof=scheduled ongoing completed cancelled"`
}

// ExamListRequest 考试列表查询参数
type ExamListRequest struct {
	PaginationRequest
	Status  string `form:"status"   binding:"omitempty,oneof=scheduled ongoing completed cancelled"`
	VenueID string `form:"venue_id" binding:"omitempty,uuid"`
	Date    string `form:"date"     binding:"omitempty,datetime=2006-01-02"`
	Keyword string `form:"keyword"  binding:"omitempty,max=50"`
}

// ExamResponse 考试响应
type ExamResponse struct {
	ID                string      `json:"id"`
	CourseCode        string      `json:"course_code"`
	CourseName        string      `json:"course_name"`
	Date              string      `json:"date"`
	StartTime         string      `json:"start_time"`
	EndTime           string      `json:"end_time"`
	Duration          int         `json:"duration,omitempty"`
	Venue             *VenueBrief `json:"venue,omitempty"`
	VenueID           string      `json:"venue_id"`
	ExpectedStudents  int         `json:"expected_students,omitempty"`
	SupervisorsNeeded int         `json:"supervisors_needed"`
	Department        string      `json:"department,omitempty"`
	Status            string      `json:"status"`
	CreatedAt         string      `json:"created_at"`
}
