package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
)

// SupervisorRepository 监考员数据访问接口
type SupervisorRepository interface {
	Create(ctx context.Context, supervisor *model.Supervisor) error
	GetByID(ctx context.Context, id string) (*model.Supervisor, error)
	GetByUserID(ctx context.Context, userID string) (*model.Supervisor, error)
	// ListAll 返回全部监考员，按创建时间升序（= 插入顺序，自动分配的候选池顺序）
	ListAll(ctx context.Context) ([]model.Supervisor, error)
	List(ctx context.Context, status, department, keyword string, offset, limit int) ([]model.Supervisor, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, supervisor *model.Supervisor) error
	Delete(ctx context.Context, id string) error
}

type supervisorRepo struct {
	db *gorm.DB
}

func NewSupervisorRepo(db *gorm.DB) SupervisorRepository {
	return &supervisorRepo{db: db}
}

func (r *supervisorRepo) Create(ctx context.Context, supervisor *model.Supervisor) error {
	return r.db.WithContext(ctx).Create(supervisor).Error
}

func (r *supervisorRepo) GetByID(ctx context.Context, id string) (*model.Supervisor, error) {
	var supervisor model.Supervisor
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("supervisor_id = ?", id).
		First(&supervisor).Error
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *supervisorRepo) GetByUserID(ctx context.Context, userID string) (*model.Supervisor, error) {
	var supervisor model.Supervisor
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&supervisor).Error
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *supervisorRepo) ListAll(ctx context.Context) ([]model.Supervisor, error) {
	var supervisors []model.Supervisor
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at ASC").
		Find(&supervisors).Error
	return supervisors, err
}

func (r *supervisorRepo) List(ctx context.Context, status, department, keyword string, offset, limit int) ([]model.Supervisor, int64, error) {
	var supervisors []model.Supervisor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Supervisor{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if department != "" {
		db = db.Joins("JOIN users ON users.user_id = supervisors.user_id").
			Where("users.department = ?", department)
	}
	if keyword != "" {
		db = db.Where("full_name ILIKE ?", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Order("supervisors.created_at ASC").
		Offset(offset).Limit(limit).
		Find(&supervisors).Error
	return supervisors, total, err
}

func (r *supervisorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Supervisor{}).Count(&n).Error
	return n, err
}

func (r *supervisorRepo) Update(ctx context.Context, supervisor *model.Supervisor) error {
	// Last-write-wins：整行覆盖写，不做版本校验
	return r.db.WithContext(ctx).Save(supervisor).Error
}

func (r *supervisorRepo) Delete(ctx context.Context, id string) error {
	// 注意：不级联删除 schedules，悬挂记录允许存在（既有行为）
	return r.db.WithContext(ctx).
		Where("supervisor_id = ?", id).
		Delete(&model.Supervisor{}).Error
}
