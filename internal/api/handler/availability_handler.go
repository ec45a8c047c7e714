package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// AvailabilityHandler 可用时间模块 HTTP 处理器
type AvailabilityHandler struct {
	svc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

// Set 申报可用时间
// POST /api/v1/availabilities
func (h *AvailabilityHandler) Set(c *gin.Context) {
	var req dto.SetAvailabilityRequest
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

	result, err := h.svc.Set(c.Request.Context(), &req, callerID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupervisorNotFound):
			response.NotFound(c, 13001, "监考员不存在")
		case errors.Is(err, service.ErrSupervisorRequired):
			response.BadRequest(c, 16001, "必须指定监考员")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 查询可用时间列表
// GET /api/v1/availabilities
func (h *AvailabilityHandler) List(c *gin.Context) {
	var req dto.AvailabilityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
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

	list, total, err := h.svc.List(c.Request.Context(), &req, callerID, role)
	if err != nil {
		if errors.Is(err, service.ErrSupervisorNotFound) {
			response.NotFound(c, 13001, "监考员不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Delete 删除可用时间记录
// DELETE /api/v1/availabilities/:id
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "记录ID不能为空")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrAvailabilityNotFound) {
			response.NotFound(c, 16002, "可用时间记录不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Import 从 iCalendar 导入不可用时间
// POST /api/v1/availabilities/import
func (h *AvailabilityHandler) Import(c *gin.Context) {
	var req dto.ImportAvailabilityRequest
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

	result, err := h.svc.Import(c.Request.Context(), &req, callerID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupervisorNotFound):
			response.NotFound(c, 13001, "监考员不存在")
		case errors.Is(err, service.ErrSupervisorRequired):
			response.BadRequest(c, 16001, "必须指定监考员")
		case errors.Is(err, service.ErrImportSourceMissing):
			response.BadRequest(c, 16003, "请提供 ICS 内容或 URL")
		default:
			response.BadRequest(c, 16004, err.Error())
		}
		return
	}

	response.OK(c, result)
}
