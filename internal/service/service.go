package service

import (
	"go.uber.org/zap"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/config"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Supervisor   SupervisorService
	Venue        VenueService
	Exam         ExamService
	Availability AvailabilityService
	Assignment   AssignmentService
	Dashboard    DashboardService
	Report       ReportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) *Service {
	activity := newActivityRecorder(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, activity, logger),
		Supervisor:   NewSupervisorService(repo, activity, logger),
		Venue:        NewVenueService(repo, activity, logger),
		Exam:         NewExamService(repo, activity, logger),
		Availability: NewAvailabilityService(repo, activity, logger),
		Assignment:   NewAssignmentService(repo, activity, logger),
		Dashboard:    NewDashboardService(repo, logger),
		Report:       NewReportService(repo, logger),
	}
}
