package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
)

// ExamRepository 考试数据访问接口
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	ListAll(ctx context.Context) ([]model.Exam, error)
	List(ctx context.Context, status, venueID string, date *time.Time, keyword string, offset, limit int) ([]model.Exam, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id string) error
}

type examRepo struct {
	db *gorm.DB
}

func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepo) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("exam_id = ?", id).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) ListAll(ctx context.Context) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Order("created_at ASC").
		Find(&exams).Error
	return exams, err
}

func (r *examRepo) List(ctx context.Context, status, venueID string, date *time.Time, keyword string, offset, limit int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Exam{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if venueID != "" {
		db = db.Where("venue_id = ?", venueID)
	}
	if date != nil {
		db = db.Where("date = ?", date.Format("2006-01-02"))
	}
	if keyword != "" {
		db = db.Where("course_code ILIKE ? OR course_name ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Venue").
		Order("date ASC, start_time ASC").
		Offset(offset).Limit(limit).
		Find(&exams).Error
	return exams, total, err
}

func (r *examRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Exam{}).Count(&n).Error
	return n, err
}

func (r *examRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Exam{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *examRepo) Update(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Save(exam).Error
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("exam_id = ?", id).
		Delete(&model.Exam{}).Error
}
