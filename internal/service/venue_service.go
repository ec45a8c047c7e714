package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── 考场模块业务错误 ──

var ErrVenueNotFound = errors.New("考场不存在")

// VenueService 考场业务接口
type VenueService interface {
	Create(ctx context.Context, req *dto.CreateVenueRequest, callerID string) (*dto.VenueResponse, error)
	GetByID(ctx context.Context, id string) (*dto.VenueResponse, error)
	List(ctx context.Context, req *dto.VenueListRequest) ([]dto.VenueResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateVenueRequest, callerID string) (*dto.VenueResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type venueService struct {
	repo     *repository.Repository
	activity *activityRecorder
	logger   *zap.Logger
}

// NewVenueService 创建 VenueService 实例
func NewVenueService(repo *repository.Repository, activity *activityRecorder, logger *zap.Logger) VenueService {
	return &venueService{repo: repo, activity: activity, logger: logger}
}

func (s *venueService) Create(ctx context.Context, req *dto.CreateVenueRequest, callerID string) (*dto.VenueResponse, error) {
	status := req.Status
	if status == "" {
		status = "available"
	}

	venue := &model.Venue{
		Name:       req.Name,
		Capacity:   req.Capacity,
		Building:   req.Building,
		Floor:      req.Floor,
		Type:       req.Type,
		Equipment:  req.Equipment,
		Status:     status,
		Facilities: model.StringArray(req.Facilities),
		IsActive:   true,
	}
	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		s.logger.Error("创建考场失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Create Venue",
		fmt.Sprintf("Venue %s created", venue.Name), model.ActivityCreate)

	resp := toVenueResponse(venue)
	return &resp, nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*dto.VenueResponse, error) {
	venue, err := s.repo.Venue.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("查询考场失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toVenueResponse(venue)
	return &resp, nil
}

func (s *venueService) List(ctx context.Context, req *dto.VenueListRequest) ([]dto.VenueResponse, int64, error) {
	venues, total, err := s.repo.Venue.List(ctx, req.Status, req.Building, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询考场列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.VenueResponse, 0, len(venues))
	for i := range venues {
		result = append(result, toVenueResponse(&venues[i]))
	}
	return result, total, nil
}

func (s *venueService) Update(ctx context.Context, id string, req *dto.UpdateVenueRequest, callerID string) (*dto.VenueResponse, error) {
	venue, err := s.repo.Venue.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.Building != nil {
		venue.Building = *req.Building
	}
	if req.Floor != nil {
		venue.Floor = *req.Floor
	}
	if req.Type != nil {
		venue.Type = *req.Type
	}
	if req.Equipment != nil {
		venue.Equipment = *req.Equipment
	}
	if req.Status != nil {
		venue.Status = *req.Status
	}
	if req.Facilities != nil {
		venue.Facilities = model.StringArray(*req.Facilities)
	}
	if req.IsActive != nil {
		venue.IsActive = *req.IsActive
	}

	if err := s.repo.Venue.Update(ctx, venue); err != nil {
		s.logger.Error("更新考场失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Update Venue",
		fmt.Sprintf("Venue %s updated", venue.Name), model.ActivityUpdate)

	resp := toVenueResponse(venue)
	return &resp, nil
}

func (s *venueService) Delete(ctx context.Context, id string, callerID string) error {
	venue, err := s.repo.Venue.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVenueNotFound
		}
		return err
	}

	if err := s.repo.Venue.Delete(ctx, id); err != nil {
		s.logger.Error("删除考场失败", zap.Error(err))
		return err
	}

	s.activity.Record(ctx, callerID, "Delete Venue",
		fmt.Sprintf("Venue %s deleted", venue.Name), model.ActivityDelete)
	return nil
}

func toVenueResponse(venue *model.Venue) dto.VenueResponse {
	resp := dto.VenueResponse{
		ID:         venue.VenueID,
		Name:       venue.Name,
		Capacity:   venue.Capacity,
		Building:   venue.Building,
		Floor:      venue.Floor,
		Type:       venue.Type,
		Equipment:  venue.Equipment,
		Status:     venue.Status,
		Facilities: venue.Facilities,
		IsActive:   venue.IsActive,
		CreatedAt:  venue.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if resp.Facilities == nil {
		resp.Facilities = []string{}
	}
	return resp
}
