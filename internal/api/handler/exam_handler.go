package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// ExamHandler 考试模块 HTTP 处理器
type ExamHandler struct {
	svc service.ExamService
}

// NewExamHandler 创建 ExamHandler
func NewExamHandler(svc service.ExamService) *ExamHandler {
	return &ExamHandler{svc: svc}
}

// Create 创建考试
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrExamVenueNotFound) {
			response.BadRequest(c, 14001, "考场不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get 查询考试详情
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 15001, "考试不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 查询考试列表
// GET /api/v1/exams
func (h *ExamHandler) List(c *gin.Context) {
	var req dto.ExamListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新考试
// PUT /api/v1/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}
	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.NotFound(c, 15001, "考试不存在")
		case errors.Is(err, service.ErrExamVenueNotFound):
			response.BadRequest(c, 14001, "考场不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 删除考试（级联清理其监考分配）
// DELETE /api/v1/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考试ID不能为空")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 15001, "考试不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
