package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
)

// VenueRepository 考场数据访问接口
type VenueRepository interface {
	Create(ctx context.Context, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	ListAll(ctx context.Context) ([]model.Venue, error)
	List(ctx context.Context, status, building string, offset, limit int) ([]model.Venue, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, venue *model.Venue) error
	Delete(ctx context.Context, id string) error
}

type venueRepo struct {
	db *gorm.DB
}

func NewVenueRepo(db *gorm.DB) VenueRepository {
	return &venueRepo{db: db}
}

func (r *venueRepo) Create(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *venueRepo) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	var venue model.Venue
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", id).
		First(&venue).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	var venues []model.Venue
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&venues).Error
	return venues, err
}

func (r *venueRepo) List(ctx context.Context, status, building string, offset, limit int) ([]model.Venue, int64, error) {
	var venues []model.Venue
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Venue{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if building != "" {
		db = db.Where("building = ?", building)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&venues).Error
	return venues, total, err
}

func (r *venueRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venue{}).Count(&n).Error
	return n, err
}

func (r *venueRepo) Update(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

func (r *venueRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("venue_id = ?", id).
		Delete(&model.Venue{}).Error
}
