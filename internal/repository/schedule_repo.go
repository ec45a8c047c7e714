package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
)

// ScheduleRepository 监考分配数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	BatchCreate(ctx context.Context, schedules []model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	List(ctx context.Context, examID, supervisorID, status string, offset, limit int) ([]model.Schedule, int64, error)
	ListByExam(ctx context.Context, examID string) ([]model.Schedule, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]model.Schedule, error)
	ListAll(ctx context.Context) ([]model.Schedule, error)
	CountByExam(ctx context.Context, examID string) (int64, error)
	// CountDistinctSupervisors 统计出现在任意分配中的不同监考员数（不按考试状态/日期过滤）
	CountDistinctSupervisors(ctx context.Context) (int64, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string) error
	DeleteByExam(ctx context.Context, examID string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) BatchCreate(ctx context.Context, schedules []model.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&schedules).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Exam").Preload("Exam.Venue").
		Preload("Supervisor").Preload("Supervisor.User").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, examID, supervisorID, status string, offset, limit int) ([]model.Schedule, int64, error) {
	var schedules []model.Schedule
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Schedule{})
	if examID != "" {
		db = db.Where("exam_id = ?", examID)
	}
	if supervisorID != "" {
		db = db.Where("supervisor_id = ?", supervisorID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Exam").Preload("Exam.Venue").
		Preload("Supervisor").Preload("Supervisor.User").
		Order("assigned_at DESC").
		Offset(offset).Limit(limit).
		Find(&schedules).Error
	return schedules, total, err
}

func (r *scheduleRepo) ListByExam(ctx context.Context, examID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Supervisor").Preload("Supervisor.User").
		Where("exam_id = ?", examID).
		Order("assigned_at ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListBySupervisor(ctx context.Context, supervisorID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Exam").Preload("Exam.Venue").
		Where("supervisor_id = ?", supervisorID).
		Order("assigned_at DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListAll(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Order("assigned_at DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) CountByExam(ctx context.Context, examID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Schedule{}).
		Where("exam_id = ?", examID).
		Count(&n).Error
	return n, err
}

func (r *scheduleRepo) CountDistinctSupervisors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Schedule{}).
		Distinct("supervisor_id").
		Count(&n).Error
	return n, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

func (r *scheduleRepo) DeleteByExam(ctx context.Context, examID string) error {
	return r.db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Delete(&model.Schedule{}).Error
}
