package handler

import (
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/redis"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Supervisor   *SupervisorHandler
	Venue        *VenueHandler
	Exam         *ExamHandler
	Availability *AvailabilityHandler
	Assignment   *AssignmentHandler
	Dashboard    *DashboardHandler
	Report       *ReportHandler
}

// NewHandler 创建 Handler 聚合
// rdb 可为 nil（未配置 Redis 时登出降级为客户端丢弃 Token）
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, rdb),
		Supervisor:   NewSupervisorHandler(svc.Supervisor),
		Venue:        NewVenueHandler(svc.Venue),
		Exam:         NewExamHandler(svc.Exam),
		Availability: NewAvailabilityHandler(svc.Availability),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Report:       NewReportHandler(svc.Report),
	}
}
