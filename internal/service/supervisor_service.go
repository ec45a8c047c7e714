package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── 监考员模块业务错误 ──

var ErrSupervisorNotFound = errors.New("监考员不存在")

const (
	defaultMaxAssignments      = 5
	defaultMaxDailyAssignments = 5
	defaultSupervisorPassword  = "password"
)

// SupervisorService 监考员业务接口
type SupervisorService interface {
	Create(ctx context.Context, req *dto.CreateSupervisorRequest, callerID string) (*dto.SupervisorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SupervisorResponse, error)
	GetByUserID(ctx context.Context, userID string) (*dto.SupervisorResponse, error)
	List(ctx context.Context, req *dto.SupervisorListRequest) ([]dto.SupervisorResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateSupervisorRequest, callerID string) (*dto.SupervisorResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type supervisorService struct {
	repo     *repository.Repository
	activity *activityRecorder
	logger   *zap.Logger
}

// NewSupervisorService 创建 SupervisorService 实例
func NewSupervisorService(repo *repository.Repository, activity *activityRecorder, logger *zap.Logger) SupervisorService {
	return &supervisorService{repo: repo, activity: activity, logger: logger}
}

func (s *supervisorService) Create(ctx context.Context, req *dto.CreateSupervisorRequest, callerID string) (*dto.SupervisorResponse, error) {
	// 用户名/邮箱唯一性
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = defaultSupervisorPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 先建登录账号，再建监考员档案（两次独立写入，无跨表事务 — 既有同步契约）
	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Department:   req.Department,
		Role:         model.RoleSupervisor,
		PasswordHash: string(hash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	maxAssignments := req.MaxAssignments
	if maxAssignments <= 0 {
		maxAssignments = defaultMaxAssignments
	}
	maxDaily := req.MaxDailyAssignments
	if maxDaily <= 0 {
		maxDaily = defaultMaxDailyAssignments
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	supervisor := &model.Supervisor{
		UserID:              user.UserID,
		FullName:            req.FullName,
		Phone:               req.Phone,
		MaxAssignments:      maxAssignments,
		MaxDailyAssignments: maxDaily,
		Specializations:     model.StringArray(req.Specializations),
		Status:              status,
	}
	if err := s.repo.Supervisor.Create(ctx, supervisor); err != nil {
		s.logger.Error("创建监考员失败", zap.Error(err))
		return nil, err
	}
	supervisor.User = user

	s.activity.Record(ctx, callerID, "Create Supervisor",
		fmt.Sprintf("Supervisor %s created", supervisor.FullName), model.ActivityCreate)

	resp := toSupervisorResponse(supervisor)
	return &resp, nil
}

func (s *supervisorService) GetByID(ctx context.Context, id string) (*dto.SupervisorResponse, error) {
	supervisor, err := s.repo.Supervisor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		s.logger.Error("查询监考员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toSupervisorResponse(supervisor)
	return &resp, nil
}

func (s *supervisorService) GetByUserID(ctx context.Context, userID string) (*dto.SupervisorResponse, error) {
	supervisor, err := s.repo.Supervisor.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		s.logger.Error("查询监考员失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toSupervisorResponse(supervisor)
	return &resp, nil
}

func (s *supervisorService) List(ctx context.Context, req *dto.SupervisorListRequest) ([]dto.SupervisorResponse, int64, error) {
	supervisors, total, err := s.repo.Supervisor.List(ctx, req.Status, req.Department, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询监考员列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SupervisorResponse, 0, len(supervisors))
	for i := range supervisors {
		result = append(result, toSupervisorResponse(&supervisors[i]))
	}
	return result, total, nil
}

func (s *supervisorService) Update(ctx context.Context, id string, req *dto.UpdateSupervisorRequest, callerID string) (*dto.SupervisorResponse, error) {
	supervisor, err := s.repo.Supervisor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		return nil, err
	}

	// 逐字段合并：只接受显式提交的字段
	if req.FullName != nil {
		supervisor.FullName = *req.FullName
	}
	if req.Phone != nil {
		supervisor.Phone = *req.Phone
	}
	if req.MaxAssignments != nil {
		supervisor.MaxAssignments = *req.MaxAssignments
	}
	if req.MaxDailyAssignments != nil {
		supervisor.MaxDailyAssignments = *req.MaxDailyAssignments
	}
	if req.Specializations != nil {
		supervisor.Specializations = model.StringArray(*req.Specializations)
	}
	if req.Status != nil {
		supervisor.Status = *req.Status
	}

	if err := s.repo.Supervisor.Update(ctx, supervisor); err != nil {
		s.logger.Error("更新监考员失败", zap.Error(err))
		return nil, err
	}

	// department 在 users 表上
	if req.Department != nil && supervisor.User != nil {
		supervisor.User.Department = *req.Department
		if err := s.repo.User.Update(ctx, supervisor.User); err != nil {
			s.logger.Error("更新用户部门失败", zap.Error(err))
			return nil, err
		}
	}

	s.activity.Record(ctx, callerID, "Update Supervisor",
		fmt.Sprintf("Supervisor %s updated", supervisor.FullName), model.ActivityUpdate)

	resp := toSupervisorResponse(supervisor)
	return &resp, nil
}

func (s *supervisorService) Delete(ctx context.Context, id string, callerID string) error {
	supervisor, err := s.repo.Supervisor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupervisorNotFound
		}
		return err
	}

	// 不级联删除该监考员的 schedules：悬挂记录允许存在
	if err := s.repo.Supervisor.Delete(ctx, id); err != nil {
		s.logger.Error("删除监考员失败", zap.Error(err))
		return err
	}

	s.activity.Record(ctx, callerID, "Delete Supervisor",
		fmt.Sprintf("Supervisor %s deleted", supervisor.FullName), model.ActivityDelete)
	return nil
}

func toSupervisorResponse(supervisor *model.Supervisor) dto.SupervisorResponse {
	resp := dto.SupervisorResponse{
		ID:                  supervisor.SupervisorID,
		UserID:              supervisor.UserID,
		FullName:            supervisor.FullName,
		Phone:               supervisor.Phone,
		MaxAssignments:      supervisor.MaxAssignments,
		MaxDailyAssignments: supervisor.MaxDailyAssignments,
		TotalAssignments:    supervisor.TotalAssignments,
		Specializations:     supervisor.Specializations,
		Status:              supervisor.Status,
		CreatedAt:           supervisor.CreatedAt.Format(time.RFC3339),
	}
	if supervisor.User != nil {
		resp.Username = supervisor.User.Username
		resp.Email = supervisor.User.Email
		resp.Department = supervisor.User.Department
	}
	if resp.Specializations == nil {
		resp.Specializations = []string{}
	}
	return resp
}
