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

// ── 考试模块业务错误 ──

var (
	ErrExamNotFound      = errors.New("考试不存在")
	ErrExamVenueNotFound = errors.New("考试指定的考场不存在")
)

// ExamService 考试业务接口
type ExamService interface {
	Create(ctx context.Context, req *dto.CreateExamRequest, callerID string) (*dto.ExamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ExamResponse, error)
	List(ctx context.Context, req *dto.ExamListRequest) ([]dto.ExamResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateExamRequest, callerID string) (*dto.ExamResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type examService struct {
	repo     *repository.Repository
	activity *activityRecorder
	logger   *zap.Logger
}

// NewExamService 创建 ExamService 实例
func NewExamService(repo *repository.Repository, activity *activityRecorder, logger *zap.Logger) ExamService {
	return &examService{repo: repo, activity: activity, logger: logger}
}

func (s *examService) Create(ctx context.Context, req *dto.CreateExamRequest, callerID string) (*dto.ExamResponse, error) {
	if _, err := s.repo.Venue.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamVenueNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("解析考试日期失败: %w", err)
	}

	needed := req.SupervisorsNeeded
	if needed == 0 {
		needed = 2
	}

	exam := &model.Exam{
		CourseCode:        req.CourseCode,
		CourseName:        req.CourseName,
		Date:              date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Duration:          req.Duration,
		VenueID:           req.VenueID,
		ExpectedStudents:  req.ExpectedStudents,
		SupervisorsNeeded: needed,
		Department:        req.Department,
		Status:            model.ExamScheduled,
	}
	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		s.logger.Error("创建考试失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Create Exam",
		fmt.Sprintf("Exam %s scheduled for %s", exam.CourseCode, req.Date), model.ActivityCreate)

	created, err := s.repo.Exam.GetByID(ctx, exam.ExamID)
	if err != nil {
		return nil, err
	}
	resp := toExamResponse(created)
	return &resp, nil
}

func (s *examService) GetByID(ctx context.Context, id string) (*dto.ExamResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toExamResponse(exam)
	return &resp, nil
}

func (s *examService) List(ctx context.Context, req *dto.ExamListRequest) ([]dto.ExamResponse, int64, error) {
	var datePtr *time.Time
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("解析查询日期失败: %w", err)
		}
		datePtr = &d
	}

	exams, total, err := s.repo.Exam.List(ctx, req.Status, req.VenueID, datePtr, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询考试列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		result = append(result, toExamResponse(&exams[i]))
	}
	return result, total, nil
}

func (s *examService) Update(ctx context.Context, id string, req *dto.UpdateExamRequest, callerID string) (*dto.ExamResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	if req.CourseCode != nil {
		exam.CourseCode = *req.CourseCode
	}
	if req.CourseName != nil {
		exam.CourseName = *req.CourseName
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("解析考试日期失败: %w", err)
		}
		exam.Date = date
	}
	if req.StartTime != nil {
		exam.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		exam.EndTime = *req.EndTime
	}
	if req.Duration != nil {
		exam.Duration = *req.Duration
	}
	if req.VenueID != nil {
		if _, err := s.repo.Venue.GetByID(ctx, *req.VenueID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrExamVenueNotFound
			}
			return nil, err
		}
		exam.VenueID = *req.VenueID
		exam.Venue = nil
	}
	if req.ExpectedStudents != nil {
		exam.ExpectedStudents = *req.ExpectedStudents
	}
	if req.SupervisorsNeeded != nil {
		exam.SupervisorsNeeded = *req.SupervisorsNeeded
	}
	if req.Department != nil {
		exam.Department = *req.Department
	}
	if req.Status != nil {
		exam.Status = *req.Status
	}

	if err := s.repo.Exam.Update(ctx, exam); err != nil {
		s.logger.Error("更新考试失败", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, callerID, "Update Exam",
		fmt.Sprintf("Exam %s updated", exam.CourseCode), model.ActivityUpdate)

	updated, err := s.repo.Exam.GetByID(ctx, exam.ExamID)
	if err != nil {
		return nil, err
	}
	resp := toExamResponse(updated)
	return &resp, nil
}

// Delete 删除考试并清理其排班。两次删除相互独立，
// 考试删除成功而排班清理失败时不回滚，仅记录日志。
func (s *examService) Delete(ctx context.Context, id string, callerID string) error {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return err
	}

	if err := s.repo.Exam.Delete(ctx, id); err != nil {
		s.logger.Error("删除考试失败", zap.Error(err))
		return err
	}
	if err := s.repo.Schedule.DeleteByExam(ctx, id); err != nil {
		s.logger.Warn("清理考试排班失败", zap.String("exam_id", id), zap.Error(err))
	}

	s.activity.Record(ctx, callerID, "Delete Exam",
		fmt.Sprintf("Exam %s deleted", exam.CourseCode), model.ActivityDelete)
	return nil
}

func toExamResponse(exam *model.Exam) dto.ExamResponse {
	resp := dto.ExamResponse{
		ID:                exam.ExamID,
		CourseCode:        exam.CourseCode,
		CourseName:        exam.CourseName,
		Date:              exam.Date.Format("2006-01-02"),
		StartTime:         exam.StartTime,
		EndTime:           exam.EndTime,
		Duration:          exam.Duration,
		VenueID:           exam.VenueID,
		ExpectedStudents:  exam.ExpectedStudents,
		SupervisorsNeeded: exam.SupervisorsNeeded,
		Department:        exam.Department,
		Status:            exam.Status,
		CreatedAt:         exam.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if exam.Venue != nil {
		resp.Venue = &dto.VenueBrief{
			ID:       exam.Venue.VenueID,
			Name:     exam.Venue.Name,
			Building: exam.Venue.Building,
			Capacity: exam.Venue.Capacity,
		}
	}
	return resp
}
