package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
)

// ActivityLogRepository 活动日志数据访问接口
type ActivityLogRepository interface {
	// Create 追加一条日志并裁剪到保留上限（最近 100 条）
	Create(ctx context.Context, log *model.ActivityLog) error
	// ListRecent 返回最近 n 条日志，时间倒序
	ListRecent(ctx context.Context, n int) ([]model.ActivityLog, error)
}

type activityLogRepo struct {
	db *gorm.DB
}

func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return err
	}
	// 只保留最近 ActivityLogCap 条
	return r.db.WithContext(ctx).
		Where("activity_log_id NOT IN (?)",
			r.db.Model(&model.ActivityLog{}).
				Select("activity_log_id").
				Order("timestamp DESC").
				Limit(model.ActivityLogCap),
		).
		Delete(&model.ActivityLog{}).Error
}

func (r *activityLogRepo) ListRecent(ctx context.Context, n int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(n).
		Find(&logs).Error
	return logs, err
}
