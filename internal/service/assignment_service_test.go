package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── 测试夹具 ──

func newAssignmentFixture() (*repository.Repository, AssignmentService) {
	repo := newMockRepository()
	activity := newActivityRecorder(repo, zap.NewNop())
	svc := NewAssignmentService(repo, activity, zap.NewNop())
	return repo, svc
}

func seedSupervisors(t *testing.T, repo *repository.Repository, n int) []string {
	t.Helper()
	ctx := context.Background()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sup := &model.Supervisor{
			UserID:         fmt.Sprintf("user-sup-%d", i+1),
			FullName:       fmt.Sprintf("Supervisor %d", i+1),
			MaxAssignments: 5,
			Status:         "active",
		}
		if err := repo.Supervisor.Create(ctx, sup); err != nil {
			t.Fatalf("写入监考员失败: %v", err)
		}
		ids = append(ids, sup.SupervisorID)
	}
	return ids
}

func seedExam(t *testing.T, repo *repository.Repository, courseCode string, needed int) string {
	t.Helper()
	exam := &model.Exam{
		CourseCode:        courseCode,
		CourseName:        courseCode + " Final",
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:         "09:00",
		EndTime:           "11:00",
		VenueID:           "venue-1",
		SupervisorsNeeded: needed,
		Status:            model.ExamScheduled,
	}
	if err := repo.Exam.Create(context.Background(), exam); err != nil {
		t.Fatalf("写入考试失败: %v", err)
	}
	return exam.ExamID
}

// ── AutoAssign ──

func TestAutoAssign_TakesPoolInInsertionOrder(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 4)
	examID := seedExam(t, repo, "CS101", 2)

	resp, err := svc.AutoAssign(ctx, examID, "")
	if err != nil {
		t.Fatalf("AutoAssign 失败: %v", err)
	}
	if resp.Assigned != 2 {
		t.Fatalf("分配数期望 2, 实际 %d", resp.Assigned)
	}

	schedules, _ := repo.Schedule.ListByExam(ctx, examID)
	if len(schedules) != 2 {
		t.Fatalf("排班记录期望 2 条, 实际 %d 条", len(schedules))
	}
	// 候选池前两人，按插入顺序
	if schedules[0].SupervisorID != supIDs[0] {
		t.Errorf("第 1 条期望监考员 %s, 实际 %s", supIDs[0], schedules[0].SupervisorID)
	}
	if schedules[1].SupervisorID != supIDs[1] {
		t.Errorf("第 2 条期望监考员 %s, 实际 %s", supIDs[1], schedules[1].SupervisorID)
	}
	for _, s := range schedules {
		if s.Status != model.ScheduleAssigned {
			t.Errorf("状态期望 assigned, 实际 %s", s.Status)
		}
		if s.NotificationSent {
			t.Error("notification_sent 初始应为 false")
		}
	}
}

func TestAutoAssign_InsufficientPoolCreatesNothing(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	seedSupervisors(t, repo, 2)
	examID := seedExam(t, repo, "CS102", 3)

	_, err := svc.AutoAssign(ctx, examID, "")
	var insufficientErr *InsufficientSupervisorsError
	if !errors.As(err, &insufficientErr) {
		t.Fatalf("期望 InsufficientSupervisorsError, 实际 %v", err)
	}
	if insufficientErr.Need != 3 || insufficientErr.Have != 2 {
		t.Errorf("错误计数期望 need=3 have=2, 实际 need=%d have=%d", insufficientErr.Need, insufficientErr.Have)
	}

	// 整场中止：不产生任何记录
	schedules, _ := repo.Schedule.ListByExam(ctx, examID)
	if len(schedules) != 0 {
		t.Errorf("人数不足时不应产生排班记录, 实际 %d 条", len(schedules))
	}
}

func TestAutoAssign_MainSupervisorOnlyFirst(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	seedSupervisors(t, repo, 3)
	examID := seedExam(t, repo, "CS103", 3)

	if _, err := svc.AutoAssign(ctx, examID, ""); err != nil {
		t.Fatalf("AutoAssign 失败: %v", err)
	}

	schedules, _ := repo.Schedule.ListByExam(ctx, examID)
	mainCount := 0
	for i, s := range schedules {
		if s.IsMainSupervisor {
			mainCount++
			if i != 0 {
				t.Errorf("主监考应为第 1 条记录, 实际在第 %d 条", i+1)
			}
		}
	}
	if mainCount != 1 {
		t.Errorf("主监考期望恰好 1 人, 实际 %d 人", mainCount)
	}
}

func TestAutoAssign_RepeatCallDuplicatesRows(t *testing.T) {
	// 不做重复防护：重复调用翻倍（既有行为回归基线）
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	seedSupervisors(t, repo, 3)
	examID := seedExam(t, repo, "CS104", 2)

	if _, err := svc.AutoAssign(ctx, examID, ""); err != nil {
		t.Fatalf("第一次 AutoAssign 失败: %v", err)
	}
	if _, err := svc.AutoAssign(ctx, examID, ""); err != nil {
		t.Fatalf("第二次 AutoAssign 失败: %v", err)
	}

	schedules, _ := repo.Schedule.ListByExam(ctx, examID)
	if len(schedules) != 4 {
		t.Errorf("两次分配期望 4 条记录, 实际 %d 条", len(schedules))
	}
}

func TestAutoAssign_ExamNotFound(t *testing.T) {
	repo, svc := newAssignmentFixture()
	seedSupervisors(t, repo, 2)

	_, err := svc.AutoAssign(context.Background(), "missing", "")
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("期望 ErrExamNotFound, 实际 %v", err)
	}
}

// ── ManualAssign ──

func TestManualAssign_NeverMain(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 1)
	examID := seedExam(t, repo, "CS105", 2)

	resp, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: examID, SupervisorID: supIDs[0]}, "")
	if err != nil {
		t.Fatalf("ManualAssign 失败: %v", err)
	}
	if resp.IsMainSupervisor {
		t.Error("手动分配不应置主监考标志")
	}
}

func TestManualAssign_MissingTargets(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 1)
	examID := seedExam(t, repo, "CS106", 2)

	if _, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: "missing", SupervisorID: supIDs[0]}, ""); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("考试缺失期望 ErrExamNotFound, 实际 %v", err)
	}
	if _, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: examID, SupervisorID: "missing"}, ""); !errors.Is(err, ErrSupervisorNotFound) {
		t.Errorf("监考员缺失期望 ErrSupervisorNotFound, 实际 %v", err)
	}
}

// ── BulkGenerate ──

func TestBulkGenerate_SkipsExamsWithAnySchedule(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 3)
	examA := seedExam(t, repo, "CS201", 2)
	examB := seedExam(t, repo, "CS202", 2)

	// examA 手动放一条：即使未满员也应被跳过
	if _, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: examA, SupervisorID: supIDs[0]}, ""); err != nil {
		t.Fatalf("ManualAssign 失败: %v", err)
	}

	result, err := svc.BulkGenerate(ctx, "")
	if err != nil {
		t.Fatalf("BulkGenerate 失败: %v", err)
	}
	if result.ExamsProcessed != 2 {
		t.Errorf("处理场次期望 2, 实际 %d", result.ExamsProcessed)
	}
	if result.ExamsSkipped != 1 {
		t.Errorf("跳过场次期望 1, 实际 %d", result.ExamsSkipped)
	}
	if result.ExamsAssigned != 1 {
		t.Errorf("分配场次期望 1, 实际 %d", result.ExamsAssigned)
	}

	// examA 仍只有手动那一条
	aSchedules, _ := repo.Schedule.ListByExam(ctx, examA)
	if len(aSchedules) != 1 {
		t.Errorf("被跳过的考试排班数期望 1, 实际 %d", len(aSchedules))
	}
	bSchedules, _ := repo.Schedule.ListByExam(ctx, examB)
	if len(bSchedules) != 2 {
		t.Errorf("新分配的考试排班数期望 2, 实际 %d", len(bSchedules))
	}
}

func TestBulkGenerate_FailureDoesNotAbort(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	seedSupervisors(t, repo, 2)
	seedExam(t, repo, "CS203", 5) // 人数不足 → failed
	okExam := seedExam(t, repo, "CS204", 2)

	result, err := svc.BulkGenerate(ctx, "")
	if err != nil {
		t.Fatalf("BulkGenerate 失败: %v", err)
	}
	if result.ExamsFailed != 1 {
		t.Errorf("失败场次期望 1, 实际 %d", result.ExamsFailed)
	}
	if result.ExamsAssigned != 1 {
		t.Errorf("分配场次期望 1, 实际 %d", result.ExamsAssigned)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("失败明细期望 1 条, 实际 %d 条", len(result.Failures))
	}

	schedules, _ := repo.Schedule.ListByExam(ctx, okExam)
	if len(schedules) != 2 {
		t.Errorf("后续考试仍应正常分配, 期望 2 条, 实际 %d 条", len(schedules))
	}
}

// ── UpdateStatus ──

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 1)
	examID := seedExam(t, repo, "CS301", 1)
	resp, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: examID, SupervisorID: supIDs[0]}, "")
	if err != nil {
		t.Fatalf("ManualAssign 失败: %v", err)
	}

	// 无状态机：任意先后顺序均可写入
	for _, status := range []string{
		model.ScheduleCompleted,
		model.ScheduleDeclined,
		model.ScheduleConfirmed,
		model.ScheduleAssigned,
		model.ScheduleCompleted,
	} {
		updated, err := svc.UpdateStatus(ctx, resp.ID, &dto.UpdateScheduleStatusRequest{Status: status}, "admin-1", model.RoleAdmin)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) 失败: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("状态期望 %s, 实际 %s", status, updated.Status)
		}
	}
}

func TestUpdateStatus_SupervisorOwnershipEnforced(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 2)
	examID := seedExam(t, repo, "CS302", 1)
	resp, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: examID, SupervisorID: supIDs[0]}, "")
	if err != nil {
		t.Fatalf("ManualAssign 失败: %v", err)
	}

	// 监考员 2 (user-sup-2) 不是这条分配的归属人
	_, err = svc.UpdateStatus(ctx, resp.ID, &dto.UpdateScheduleStatusRequest{Status: model.ScheduleConfirmed}, "user-sup-2", model.RoleSupervisor)
	if !errors.Is(err, ErrScheduleNotOwned) {
		t.Fatalf("期望 ErrScheduleNotOwned, 实际 %v", err)
	}

	// 归属人可以更新
	updated, err := svc.UpdateStatus(ctx, resp.ID, &dto.UpdateScheduleStatusRequest{Status: model.ScheduleConfirmed}, "user-sup-1", model.RoleSupervisor)
	if err != nil {
		t.Fatalf("归属人更新失败: %v", err)
	}
	if updated.Status != model.ScheduleConfirmed {
		t.Errorf("状态期望 confirmed, 实际 %s", updated.Status)
	}
}

// ── NotifyAssignments ──

func TestNotifyAssignments_SetsFlagOnce(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	supIDs := seedSupervisors(t, repo, 1)
	examID := seedExam(t, repo, "CS303", 1)
	resp, err := svc.ManualAssign(ctx, &dto.ManualAssignRequest{ExamID: examID, SupervisorID: supIDs[0]}, "")
	if err != nil {
		t.Fatalf("ManualAssign 失败: %v", err)
	}

	first, err := svc.NotifyAssignments(ctx, &dto.NotifyAssignmentsRequest{ScheduleIDs: []string{resp.ID, "missing"}}, "")
	if err != nil {
		t.Fatalf("NotifyAssignments 失败: %v", err)
	}
	if first.Notified != 1 {
		t.Errorf("首次通知数期望 1, 实际 %d", first.Notified)
	}

	second, err := svc.NotifyAssignments(ctx, &dto.NotifyAssignmentsRequest{ScheduleIDs: []string{resp.ID}}, "")
	if err != nil {
		t.Fatalf("重复通知失败: %v", err)
	}
	if second.Notified != 0 {
		t.Errorf("已通知记录不应重复计数, 实际 %d", second.Notified)
	}

	schedule, _ := repo.Schedule.GetByID(ctx, resp.ID)
	if !schedule.NotificationSent {
		t.Error("notification_sent 应为 true")
	}
}

// ── RemoveAssignment ──

func TestRemoveAssignment_NoMainRecalculation(t *testing.T) {
	repo, svc := newAssignmentFixture()
	ctx := context.Background()

	seedSupervisors(t, repo, 2)
	examID := seedExam(t, repo, "CS304", 2)
	resp, err := svc.AutoAssign(ctx, examID, "")
	if err != nil {
		t.Fatalf("AutoAssign 失败: %v", err)
	}

	// 删掉主监考那条，余下记录不重算主监考
	var mainID string
	for _, s := range resp.Schedules {
		if s.IsMainSupervisor {
			mainID = s.ID
		}
	}
	if mainID == "" {
		t.Fatal("未找到主监考记录")
	}
	if err := svc.RemoveAssignment(ctx, mainID, ""); err != nil {
		t.Fatalf("RemoveAssignment 失败: %v", err)
	}

	remaining, _ := repo.Schedule.ListByExam(ctx, examID)
	if len(remaining) != 1 {
		t.Fatalf("剩余记录期望 1 条, 实际 %d 条", len(remaining))
	}
	if remaining[0].IsMainSupervisor {
		t.Error("删除主监考后不应有新的主监考产生")
	}
}
