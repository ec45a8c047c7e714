package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// VenueHandler 考场模块 HTTP 处理器
type VenueHandler struct {
	svc service.VenueService
}

// NewVenueHandler 创建 VenueHandler
func NewVenueHandler(svc service.VenueService) *VenueHandler {
	return &VenueHandler{svc: svc}
}

// Create 创建考场
// POST /api/v1/venues
func (h *VenueHandler) Create(c *gin.Context) {
	var req dto.CreateVenueRequest
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
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get 查询考场详情
// GET /api/v1/venues/:id
func (h *VenueHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考场ID不能为空")
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.NotFound(c, 14001, "考场不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 查询考场列表
// GET /api/v1/venues
func (h *VenueHandler) List(c *gin.Context) {
	var req dto.VenueListRequest
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

// Update 更新考场
// PUT /api/v1/venues/:id
func (h *VenueHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考场ID不能为空")
		return
	}
	var req dto.UpdateVenueRequest
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
		if errors.Is(err, service.ErrVenueNotFound) {
			response.NotFound(c, 14001, "考场不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Delete 删除考场
// DELETE /api/v1/venues/:id
func (h *VenueHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "考场ID不能为空")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.NotFound(c, 14001, "考场不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
