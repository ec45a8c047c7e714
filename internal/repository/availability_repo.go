package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
)

// AvailabilityRepository 可用时间数据访问接口
type AvailabilityRepository interface {
	Create(ctx context.Context, availability *model.Availability) error
	BatchCreate(ctx context.Context, availabilities []model.Availability) error
	GetByID(ctx context.Context, id string) (*model.Availability, error)
	List(ctx context.Context, supervisorID string, date *time.Time, offset, limit int) ([]model.Availability, int64, error)
	// CountAvailableSupervisors 统计至少有一条 is_available 记录的监考员数（任意日期）
	CountAvailableSupervisors(ctx context.Context) (int64, error)
	Update(ctx context.Context, availability *model.Availability) error
	Delete(ctx context.Context, id string) error
}

type availabilityRepo struct {
	db *gorm.DB
}

func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) Create(ctx context.Context, availability *model.Availability) error {
	return r.db.WithContext(ctx).Create(availability).Error
}

func (r *availabilityRepo) BatchCreate(ctx context.Context, availabilities []model.Availability) error {
	if len(availabilities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&availabilities).Error
}

func (r *availabilityRepo) GetByID(ctx context.Context, id string) (*model.Availability, error) {
	var availability model.Availability
	err := r.db.WithContext(ctx).
		Where("availability_id = ?", id).
		First(&availability).Error
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepo) List(ctx context.Context, supervisorID string, date *time.Time, offset, limit int) ([]model.Availability, int64, error) {
	var availabilities []model.Availability
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Availability{})
	if supervisorID != "" {
		db = db.Where("supervisor_id = ?", supervisorID)
	}
	if date != nil {
		db = db.Where("date = ?", date.Format("2006-01-02"))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("date ASC").
		Offset(offset).Limit(limit).
		Find(&availabilities).Error
	return availabilities, total, err
}

func (r *availabilityRepo) CountAvailableSupervisors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Availability{}).
		Where("is_available = ?", true).
		Distinct("supervisor_id").
		Count(&n).Error
	return n, err
}

func (r *availabilityRepo) Update(ctx context.Context, availability *model.Availability) error {
	return r.db.WithContext(ctx).Save(availability).Error
}

func (r *availabilityRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("availability_id = ?", id).
		Delete(&model.Availability{}).Error
}
