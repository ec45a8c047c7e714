package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// AssignmentHandler 监考分配模块 HTTP 处理器
type AssignmentHandler struct {
	svc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(svc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

// AutoAssign 自动分配单场考试
// POST /api/v1/assignments/auto
func (h *AssignmentHandler) AutoAssign(c *gin.Context) {
	var req dto.AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.AutoAssign(c.Request.Context(), req.ExamID, callerID)
	if err != nil {
		var insufficientErr *service.InsufficientSupervisorsError
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.NotFound(c, 15001, "考试不存在")
		case errors.As(err, &insufficientErr):
			response.Error(c, http.StatusConflict, 17002, insufficientErr.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ManualAssign 手动分配
// POST /api/v1/assignments/manual
func (h *AssignmentHandler) ManualAssign(c *gin.Context) {
	var req dto.ManualAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.ManualAssign(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.NotFound(c, 15001, "考试不存在")
		case errors.Is(err, service.ErrSupervisorNotFound):
			response.NotFound(c, 13001, "监考员不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// BulkGenerate 批量生成分配
// POST /api/v1/assignments/generate
func (h *AssignmentHandler) BulkGenerate(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.BulkGenerate(c.Request.Context(), callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 查询分配列表
// GET /api/v1/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.svc.ListSchedules(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListMy 查询当前监考员的分配
// GET /api/v1/assignments/my
func (h *AssignmentHandler) ListMy(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListMySchedules(c.Request.Context(), callerID)
	if err != nil {
		if errors.Is(err, service.ErrSupervisorNotFound) {
			response.NotFound(c, 13001, "监考员不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Remove 删除一条分配
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveAssignment(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.NotFound(c, 17001, "监考分配记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// UpdateStatus 更新分配状态
// PATCH /api/v1/assignments/:id/status
func (h *AssignmentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分配ID不能为空")
		return
	}
	var req dto.UpdateScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, &req, callerID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.NotFound(c, 17001, "监考分配记录不存在")
		case errors.Is(err, service.ErrScheduleNotOwned):
			response.Forbidden(c, 10003, "只能操作自己的监考分配")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Notify 发送分配通知
// POST /api/v1/assignments/notify
func (h *AssignmentHandler) Notify(c *gin.Context) {
	var req dto.NotifyAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.NotifyAssignments(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
