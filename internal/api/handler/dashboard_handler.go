package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	svc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats 仪表盘统计
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	result, err := h.svc.GetStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Conflicts 排班冲突列表（检测未实现，恒为空）
// GET /api/v1/dashboard/conflicts
func (h *DashboardHandler) Conflicts(c *gin.Context) {
	result, err := h.svc.ListConflicts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ActivityLogs 最近活动日志
// GET /api/v1/activity-logs
func (h *DashboardHandler) ActivityLogs(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.svc.ListActivity(c.Request.Context(), n)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
