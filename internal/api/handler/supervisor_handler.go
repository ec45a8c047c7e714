package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// SupervisorHandler 监考员模块 HTTP 处理器
type SupervisorHandler struct {
	svc service.SupervisorService
}

// NewSupervisorHandler 创建 SupervisorHandler
func NewSupervisorHandler(svc service.SupervisorService) *SupervisorHandler {
	return &SupervisorHandler{svc: svc}
}

// Create 创建监考员
// POST /api/v1/supervisors
func (h *SupervisorHandler) Create(c *gin.Context) {
	var req dto.CreateSupervisorRequest
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
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.BadRequest(c, 11002, "用户名已存在")
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, 11003, "邮箱已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Get 查询监考员详情
// GET /api/v1/supervisors/:id
func (h *SupervisorHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "监考员ID不能为空")
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupervisorNotFound) {
			response.NotFound(c, 13001, "监考员不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List 查询监考员列表
// GET /api/v1/supervisors
func (h *SupervisorHandler) List(c *gin.Context) {
	var req dto.SupervisorListRequest
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

// Update 更新监考员
// PUT /api/v1/supervisors/:id
func (h *SupervisorHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "监考员ID不能为空")
		return
	}
	var req dto.UpdateSupervisorRequest
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
		if errors.Is(err, service.ErrSupervisorNotFound) {
			response.NotFound(c, 13001, "监考员不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Delete 删除监考员
// DELETE /api/v1/supervisors/:id
func (h *SupervisorHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "监考员ID不能为空")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, callerID); err != nil {
		if errors.Is(err, service.ErrSupervisorNotFound) {
			response.NotFound(c, 13001, "监考员不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
