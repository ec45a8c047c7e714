package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Workload 工作量报表
// GET /api/v1/reports/workload
func (h *ReportHandler) Workload(c *gin.Context) {
	result, err := h.svc.Workload(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Venues 考场使用报表
// GET /api/v1/reports/venues
func (h *ReportHandler) Venues(c *gin.Context) {
	result, err := h.svc.VenueUsage(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Export 导出 xlsx 报表
// GET /api/v1/reports/export
func (h *ReportHandler) Export(c *gin.Context) {
	buf, filename, err := h.svc.ExportWorkbook(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
