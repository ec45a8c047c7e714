package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── 可用时间模块业务错误 ──

var (
	ErrAvailabilityNotFound = errors.New("可用时间记录不存在")
	ErrSupervisorRequired   = errors.New("必须指定监考员")
	ErrImportSourceMissing  = errors.New("必须提供 ICS 内容或 URL")
)

const defaultImportDays = 90

// AvailabilityService 可用时间业务接口
type AvailabilityService interface {
	Set(ctx context.Context, req *dto.SetAvailabilityRequest, callerID, callerRole string) (*dto.AvailabilityResponse, error)
	List(ctx context.Context, req *dto.AvailabilityListRequest, callerID, callerRole string) ([]dto.AvailabilityResponse, int64, error)
	Delete(ctx context.Context, id string, callerID string) error
	// Import 从 iCalendar 源导入不可用时间，每个事件生成一条 is_available=false 的记录
	Import(ctx context.Context, req *dto.ImportAvailabilityRequest, callerID, callerRole string) (*dto.ImportAvailabilityResponse, error)
}

type availabilityService struct {
	repo     *repository.Repository
	activity *activityRecorder
	logger   *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, activity *activityRecorder, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, activity: activity, logger: logger}
}

// resolveSupervisorID 确定操作目标监考员：
// 监考员只能操作自己的记录，管理员通过 requested 指定
func (s *availabilityService) resolveSupervisorID(ctx context.Context, requested, callerID, callerRole string) (string, error) {
	if callerRole == model.RoleSupervisor {
		sup, err := s.repo.Supervisor.GetByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrSupervisorNotFound
			}
			return "", err
		}
		return sup.SupervisorID, nil
	}
	if requested == "" {
		return "", ErrSupervisorRequired
	}
	if _, err := s.repo.Supervisor.GetByID(ctx, requested); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSupervisorNotFound
		}
		return "", err
	}
	return requested, nil
}

func (s *availabilityService) Set(ctx context.Context, req *dto.SetAvailabilityRequest, callerID, callerRole string) (*dto.AvailabilityResponse, error) {
	supervisorID, err := s.resolveSupervisorID(ctx, req.SupervisorID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("解析日期失败: %w", err)
	}

	slots := make(model.TimeSlotList, 0, len(req.TimeSlots))
	for _, slot := range req.TimeSlots {
		slots = append(slots, model.TimeSlot{
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: slot.IsAvailable,
		})
	}

	availability := &model.Availability{
		SupervisorID: supervisorID,
		Date:         date,
		TimeSlots:    slots,
		IsAvailable:  req.IsAvailable,
		Notes:        req.Notes,
	}
	if err := s.repo.Availability.Create(ctx, availability); err != nil {
		s.logger.Error("创建可用时间记录失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Set Availability",
		fmt.Sprintf("Availability set for %s", req.Date), model.ActivityUpdate)

	resp := toAvailabilityResponse(availability)
	return &resp, nil
}

func (s *availabilityService) List(ctx context.Context, req *dto.AvailabilityListRequest, callerID, callerRole string) ([]dto.AvailabilityResponse, int64, error) {
	supervisorID := req.SupervisorID
	if callerRole == model.RoleSupervisor {
		// 监考员只能查看自己的申报
		sup, err := s.repo.Supervisor.GetByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, ErrSupervisorNotFound
			}
			return nil, 0, err
		}
		supervisorID = sup.SupervisorID
	}

	var datePtr *time.Time
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("解析查询日期失败: %w", err)
		}
		datePtr = &d
	}

	availabilities, total, err := s.repo.Availability.List(ctx, supervisorID, datePtr, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询可用时间列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AvailabilityResponse, 0, len(availabilities))
	for i := range availabilities {
		result = append(result, toAvailabilityResponse(&availabilities[i]))
	}
	return result, total, nil
}

func (s *availabilityService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Availability.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailabilityNotFound
		}
		return err
	}
	if err := s.repo.Availability.Delete(ctx, id); err != nil {
		s.logger.Error("删除可用时间记录失败", zap.Error(err))
		return err
	}
	s.activity.Record(ctx, callerID, "Delete Availability",
		"Availability record deleted", model.ActivityDelete)
	return nil
}

func (s *availabilityService) Import(ctx context.Context, req *dto.ImportAvailabilityRequest, callerID, callerRole string) (*dto.ImportAvailabilityResponse, error) {
	supervisorID, err := s.resolveSupervisorID(ctx, req.SupervisorID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch {
	case req.Content != "":
		reader = io.NopCloser(strings.NewReader(req.Content))
	case req.URL != "":
		reader, err = FetchICSContent(req.URL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrImportSourceMissing
	}
	defer reader.Close()

	days := req.Days
	if days <= 0 {
		days = defaultImportDays
	}
	now := time.Now()
	rangeStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rangeEnd := rangeStart.AddDate(0, 0, days)

	windows, err := ParseBusyWindows(reader, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	// 按日期聚合，同一天的多个事件合并为一条记录的多个时段
	byDate := make(map[string]*model.Availability)
	var order []string
	skipped := 0
	for _, w := range windows {
		if w.StartTime == w.EndTime {
			skipped++
			continue
		}
		key := w.Date.Format("2006-01-02")
		rec, ok := byDate[key]
		if !ok {
			rec = &model.Availability{
				SupervisorID: supervisorID,
				Date:         w.Date,
				IsAvailable:  false,
				Notes:        "Imported from calendar",
			}
			byDate[key] = rec
			order = append(order, key)
		}
		rec.TimeSlots = append(rec.TimeSlots, model.TimeSlot{
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			IsAvailable: false,
		})
	}

	records := make([]model.Availability, 0, len(order))
	for _, key := range order {
		records = append(records, *byDate[key])
	}
	if err := s.repo.Availability.BatchCreate(ctx, records); err != nil {
		s.logger.Error("导入可用时间记录失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Import Availability",
		fmt.Sprintf("%d unavailable days imported from calendar", len(records)), model.ActivityUpdate)

	return &dto.ImportAvailabilityResponse{Imported: len(records), Skipped: skipped}, nil
}

func toAvailabilityResponse(availability *model.Availability) dto.AvailabilityResponse {
	slots := make([]dto.TimeSlotInput, 0, len(availability.TimeSlots))
	for _, slot := range availability.TimeSlots {
		slots = append(slots, dto.TimeSlotInput{
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: slot.IsAvailable,
		})
	}
	return dto.AvailabilityResponse{
		ID:           availability.AvailabilityID,
		SupervisorID: availability.SupervisorID,
		Date:         availability.Date.Format("2006-01-02"),
		TimeSlots:    slots,
		IsAvailable:  availability.IsAvailable,
		Notes:        availability.Notes,
		CreatedAt:    availability.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
