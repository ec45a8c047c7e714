package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

const recentActivityCount = 10

// DashboardService 仪表盘业务接口
type DashboardService interface {
	// GetStats 每次读取实时重算，快照不变时结果幂等
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	// ListConflicts 冲突检测尚未实现，恒返回空列表
	ListConflicts(ctx context.Context) ([]dto.SchedulingConflict, error)
	ListActivity(ctx context.Context, n int) ([]dto.ActivityLogResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	totalExams, err := s.repo.Exam.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSupervisors, err := s.repo.Supervisor.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalVenues, err := s.repo.Venue.Count(ctx)
	if err != nil {
		return nil, err
	}
	scheduledExams, err := s.repo.Exam.CountByStatus(ctx, model.ExamScheduled)
	if err != nil {
		return nil, err
	}
	assignedSupervisors, err := s.repo.Schedule.CountDistinctSupervisors(ctx)
	if err != nil {
		return nil, err
	}
	availableSupervisors, err := s.repo.Availability.CountAvailableSupervisors(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.ListActivity(ctx, recentActivityCount)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalExams:           totalExams,
		TotalSupervisors:     totalSupervisors,
		TotalVenues:          totalVenues,
		ScheduledExams:       scheduledExams,
		AssignedSupervisors:  assignedSupervisors,
		AvailableSupervisors: availableSupervisors,
		Conflicts:            0,
		RecentActivity:       recent,
	}, nil
}

func (s *dashboardService) ListConflicts(ctx context.Context) ([]dto.SchedulingConflict, error) {
	return []dto.SchedulingConflict{}, nil
}

func (s *dashboardService) ListActivity(ctx context.Context, n int) ([]dto.ActivityLogResponse, error) {
	if n <= 0 || n > model.ActivityLogCap {
		n = recentActivityCount
	}
	logs, err := s.repo.ActivityLog.ListRecent(ctx, n)
	if err != nil {
		s.logger.Error("查询活动日志失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, log := range logs {
		result = append(result, dto.ActivityLogResponse{
			ID:          log.ActivityLogID,
			Action:      log.Action,
			Description: log.Description,
			UserID:      log.UserID,
			UserName:    log.UserName,
			Timestamp:   log.Timestamp.Format(time.RFC3339),
			Type:        log.Type,
		})
	}
	return result, nil
}
