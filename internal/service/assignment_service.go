package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── 监考分配模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("监考分配记录不存在")
	ErrScheduleNotOwned = errors.New("只能操作自己的监考分配")
)

// InsufficientSupervisorsError 候选池人数不足，携带需要/现有人数
type InsufficientSupervisorsError struct {
	Need int
	Have int
}

func (e *InsufficientSupervisorsError) Error() string {
	return fmt.Sprintf("监考员数量不足: 需要 %d 人, 现有 %d 人", e.Need, e.Have)
}

// AssignmentService 监考分配业务接口
//
// 分配引擎为贪心顺序取人：候选池 = 全部监考员按创建时间升序，
// 不做可用性、负载或重复过滤。人数不足时整场中止，不产生任何记录。
type AssignmentService interface {
	AutoAssign(ctx context.Context, examID, callerID string) (*dto.AutoAssignResponse, error)
	ManualAssign(ctx context.Context, req *dto.ManualAssignRequest, callerID string) (*dto.ScheduleResponse, error)
	RemoveAssignment(ctx context.Context, scheduleID, callerID string) error
	BulkGenerate(ctx context.Context, callerID string) (*dto.BulkGenerateResponse, error)
	UpdateStatus(ctx context.Context, scheduleID string, req *dto.UpdateScheduleStatusRequest, callerID, callerRole string) (*dto.ScheduleResponse, error)
	NotifyAssignments(ctx context.Context, req *dto.NotifyAssignmentsRequest, callerID string) (*dto.NotifyAssignmentsResponse, error)
	ListSchedules(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error)
	ListMySchedules(ctx context.Context, callerID string) ([]dto.ScheduleResponse, error)
	GetByID(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error)
}

type assignmentService struct {
	repo     *repository.Repository
	activity *activityRecorder
	logger   *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, activity *activityRecorder, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, activity: activity, logger: logger}
}

// AutoAssign 为单场考试自动分配监考员。
// 取候选池前 supervisors_needed 人，第一人记为主监考。
// 不检查已有分配：重复调用会产生重复记录（既有行为，见回归测试）。
func (s *assignmentService) AutoAssign(ctx context.Context, examID, callerID string) (*dto.AutoAssignResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	pool, err := s.repo.Supervisor.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询监考员候选池失败", zap.Error(err))
		return nil, err
	}
	if len(pool) < exam.SupervisorsNeeded {
		return nil, &InsufficientSupervisorsError{Need: exam.SupervisorsNeeded, Have: len(pool)}
	}

	now := time.Now()
	schedules := make([]model.Schedule, 0, exam.SupervisorsNeeded)
	for i := 0; i < exam.SupervisorsNeeded; i++ {
		schedules = append(schedules, model.Schedule{
			ExamID:           exam.ExamID,
			SupervisorID:     pool[i].SupervisorID,
			AssignedAt:       now,
			Status:           model.ScheduleAssigned,
			IsMainSupervisor: i == 0,
			NotificationSent: false,
		})
	}
	if err := s.repo.Schedule.BatchCreate(ctx, schedules); err != nil {
		s.logger.Error("写入监考分配失败", zap.String("exam_id", examID), zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Auto Assign",
		fmt.Sprintf("%d supervisors assigned to exam %s", len(schedules), exam.CourseCode), model.ActivityAssign)

	resp := &dto.AutoAssignResponse{
		ExamID:    exam.ExamID,
		Assigned:  len(schedules),
		Schedules: make([]dto.ScheduleResponse, 0, len(schedules)),
	}
	for i := range schedules {
		sr := toScheduleResponse(&schedules[i])
		sr.Supervisor = supervisorBrief(&pool[i])
		resp.Schedules = append(resp.Schedules, sr)
	}
	return resp, nil
}

// ManualAssign 手动指定一条分配。主监考标志恒为 false，
// 也不校验该考试是否已满员或重复。
func (s *assignmentService) ManualAssign(ctx context.Context, req *dto.ManualAssignRequest, callerID string) (*dto.ScheduleResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, req.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}
	supervisor, err := s.repo.Supervisor.GetByID(ctx, req.SupervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		return nil, err
	}

	schedule := &model.Schedule{
		ExamID:           exam.ExamID,
		SupervisorID:     supervisor.SupervisorID,
		AssignedAt:       time.Now(),
		Status:           model.ScheduleAssigned,
		IsMainSupervisor: false,
		NotificationSent: false,
	}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("写入监考分配失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Manual Assign",
		fmt.Sprintf("%s assigned to exam %s", supervisor.FullName, exam.CourseCode), model.ActivityAssign)

	resp := toScheduleResponse(schedule)
	resp.Supervisor = supervisorBrief(supervisor)
	return &resp, nil
}

// RemoveAssignment 删除一条分配。不重算该考试的主监考。
func (s *assignmentService) RemoveAssignment(ctx context.Context, scheduleID, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	if err := s.repo.Schedule.Delete(ctx, scheduleID); err != nil {
		s.logger.Error("删除监考分配失败", zap.Error(err))
		return err
	}
	s.activity.Record(ctx, callerID, "Remove Assignment",
		"Supervision assignment removed", model.ActivityDelete)
	return nil
}

// BulkGenerate 逐场扫描全部考试：已有任意分配的跳过（即使未满员），
// 其余逐场调用 AutoAssign；单场失败计入 failed，不中断。
func (s *assignmentService) BulkGenerate(ctx context.Context, callerID string) (*dto.BulkGenerateResponse, error) {
	exams, err := s.repo.Exam.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询考试列表失败", zap.Error(err))
		return nil, err
	}

	result := &dto.BulkGenerateResponse{ExamsProcessed: len(exams)}
	for i := range exams {
		exam := &exams[i]
		n, err := s.repo.Schedule.CountByExam(ctx, exam.ExamID)
		if err != nil {
			result.ExamsFailed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", exam.CourseCode, err))
			continue
		}
		if n > 0 {
			result.ExamsSkipped++
			continue
		}
		if _, err := s.AutoAssign(ctx, exam.ExamID, callerID); err != nil {
			result.ExamsFailed++
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", exam.CourseCode, err))
			continue
		}
		result.ExamsAssigned++
	}

	s.activity.Record(ctx, callerID, "Bulk Generate",
		fmt.Sprintf("Bulk assignment: %d assigned, %d skipped, %d failed",
			result.ExamsAssigned, result.ExamsSkipped, result.ExamsFailed), model.ActivityAssign)
	return result, nil
}

// UpdateStatus 写入任意目标状态，不做状态机校验。
// 监考员只能更新自己的分配，管理员不受限。
func (s *assignmentService) UpdateStatus(ctx context.Context, scheduleID string, req *dto.UpdateScheduleStatusRequest, callerID, callerRole string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if callerRole == model.RoleSupervisor {
		sup, err := s.repo.Supervisor.GetByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduleNotOwned
			}
			return nil, err
		}
		if sup.SupervisorID != schedule.SupervisorID {
			return nil, ErrScheduleNotOwned
		}
	}

	schedule.Status = req.Status
	if req.Notes != "" {
		schedule.Notes = req.Notes
	}
	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("更新分配状态失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Update Assignment",
		fmt.Sprintf("Assignment status changed to %s", req.Status), model.ActivityUpdate)

	resp := toScheduleResponse(schedule)
	return &resp, nil
}

// NotifyAssignments 仅置位 notification_sent，无真实消息投递
func (s *assignmentService) NotifyAssignments(ctx context.Context, req *dto.NotifyAssignmentsRequest, callerID string) (*dto.NotifyAssignmentsResponse, error) {
	notified := 0
	for _, id := range req.ScheduleIDs {
		schedule, err := s.repo.Schedule.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if schedule.NotificationSent {
			continue
		}
		schedule.NotificationSent = true
		if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
			s.logger.Error("更新通知标记失败", zap.String("schedule_id", id), zap.Error(err))
			return nil, err
		}
		notified++
	}

	s.activity.Record(ctx, callerID, "Send Notifications",
		fmt.Sprintf("%d assignment notifications sent", notified), model.ActivityNotification)
	return &dto.NotifyAssignmentsResponse{Notified: notified}, nil
}

func (s *assignmentService) ListSchedules(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error) {
	schedules, total, err := s.repo.Schedule.List(ctx, req.ExamID, req.SupervisorID, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询分配列表失败", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i]))
	}
	return result, total, nil
}

// ListMySchedules 返回当前登录监考员的全部分配
func (s *assignmentService) ListMySchedules(ctx context.Context, callerID string) ([]dto.ScheduleResponse, error) {
	sup, err := s.repo.Supervisor.GetByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		return nil, err
	}
	schedules, err := s.repo.Schedule.ListBySupervisor(ctx, sup.SupervisorID)
	if err != nil {
		s.logger.Error("查询个人分配失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

func (s *assignmentService) GetByID(ctx context.Context, scheduleID string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func toScheduleResponse(schedule *model.Schedule) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		ID:               schedule.ScheduleID,
		ExamID:           schedule.ExamID,
		SupervisorID:     schedule.SupervisorID,
		AssignedAt:       schedule.AssignedAt.Format(time.RFC3339),
		Status:           schedule.Status,
		IsMainSupervisor: schedule.IsMainSupervisor,
		NotificationSent: schedule.NotificationSent,
		Notes:            schedule.Notes,
	}
	if schedule.Exam != nil {
		exam := toExamResponse(schedule.Exam)
		resp.Exam = &exam
	}
	if schedule.Supervisor != nil {
		resp.Supervisor = supervisorBrief(schedule.Supervisor)
	}
	return resp
}

func supervisorBrief(supervisor *model.Supervisor) *dto.SupervisorResponse {
	r := toSupervisorResponse(supervisor)
	return &r
}
