package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// activityRecorder 活动日志记录器
// 所有业务 Service 共用；写入失败只记日志，不影响主操作
type activityRecorder struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func newActivityRecorder(repo *repository.Repository, logger *zap.Logger) *activityRecorder {
	return &activityRecorder{repo: repo, logger: logger}
}

// Record 追加一条活动日志；callerID 为空时记为 system
func (a *activityRecorder) Record(ctx context.Context, callerID, action, description, typ string) {
	userID := callerID
	userName := "System"
	if callerID != "" {
		if user, err := a.repo.User.GetByID(ctx, callerID); err == nil {
			userName = user.Username
		}
	} else {
		userID = "system"
	}

	log := &model.ActivityLog{
		Action:      action,
		Description: description,
		UserID:      userID,
		UserName:    userName,
		Timestamp:   time.Now(),
		Type:        typ,
	}
	if err := a.repo.ActivityLog.Create(ctx, log); err != nil {
		a.logger.Warn("写入活动日志失败", zap.String("action", action), zap.Error(err))
	}
}
