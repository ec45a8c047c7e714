package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock SupervisorRepository ──

// 保留插入顺序：ListAll 的返回顺序即自动分配的候选池顺序
type mockSupervisorRepo struct {
	supervisors map[string]*model.Supervisor
	order       []string
	seq         int
}

func newMockSupervisorRepo() *mockSupervisorRepo {
	return &mockSupervisorRepo{supervisors: make(map[string]*model.Supervisor)}
}

func (m *mockSupervisorRepo) Create(_ context.Context, supervisor *model.Supervisor) error {
	if supervisor.SupervisorID == "" {
		m.seq++
		supervisor.SupervisorID = fmt.Sprintf("sup-%d", m.seq)
	}
	supervisor.CreatedAt = time.Now()
	m.supervisors[supervisor.SupervisorID] = supervisor
	m.order = append(m.order, supervisor.SupervisorID)
	return nil
}

func (m *mockSupervisorRepo) GetByID(_ context.Context, id string) (*model.Supervisor, error) {
	if s, ok := m.supervisors[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSupervisorRepo) GetByUserID(_ context.Context, userID string) (*model.Supervisor, error) {
	for _, id := range m.order {
		if s, ok := m.supervisors[id]; ok && s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSupervisorRepo) ListAll(_ context.Context) ([]model.Supervisor, error) {
	var result []model.Supervisor
	for _, id := range m.order {
		if s, ok := m.supervisors[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSupervisorRepo) List(_ context.Context, status, department, keyword string, offset, limit int) ([]model.Supervisor, int64, error) {
	all, _ := m.ListAll(context.Background())
	var filtered []model.Supervisor
	for _, s := range all {
		if status != "" && s.Status != status {
			continue
		}
		filtered = append(filtered, s)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockSupervisorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.supervisors)), nil
}

func (m *mockSupervisorRepo) Update(_ context.Context, supervisor *model.Supervisor) error {
	m.supervisors[supervisor.SupervisorID] = supervisor
	return nil
}

func (m *mockSupervisorRepo) Delete(_ context.Context, id string) error {
	delete(m.supervisors, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock VenueRepository ──

type mockVenueRepo struct {
	venues map[string]*model.Venue
	order  []string
	seq    int
}

func newMockVenueRepo() *mockVenueRepo {
	return &mockVenueRepo{venues: make(map[string]*model.Venue)}
}

func (m *mockVenueRepo) Create(_ context.Context, venue *model.Venue) error {
	if venue.VenueID == "" {
		m.seq++
		venue.VenueID = fmt.Sprintf("venue-%d", m.seq)
	}
	venue.CreatedAt = time.Now()
	m.venues[venue.VenueID] = venue
	m.order = append(m.order, venue.VenueID)
	return nil
}

func (m *mockVenueRepo) GetByID(_ context.Context, id string) (*model.Venue, error) {
	if v, ok := m.venues[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVenueRepo) ListAll(_ context.Context) ([]model.Venue, error) {
	var result []model.Venue
	for _, id := range m.order {
		if v, ok := m.venues[id]; ok {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (m *mockVenueRepo) List(_ context.Context, status, building string, offset, limit int) ([]model.Venue, int64, error) {
	all, _ := m.ListAll(context.Background())
	var filtered []model.Venue
	for _, v := range all {
		if status != "" && v.Status != status {
			continue
		}
		if building != "" && v.Building != building {
			continue
		}
		filtered = append(filtered, v)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockVenueRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.venues)), nil
}

func (m *mockVenueRepo) Update(_ context.Context, venue *model.Venue) error {
	m.venues[venue.VenueID] = venue
	return nil
}

func (m *mockVenueRepo) Delete(_ context.Context, id string) error {
	delete(m.venues, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	exams map[string]*model.Exam
	order []string
	seq   int
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{exams: make(map[string]*model.Exam)}
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	if exam.ExamID == "" {
		m.seq++
		exam.ExamID = fmt.Sprintf("exam-%d", m.seq)
	}
	exam.CreatedAt = time.Now()
	m.exams[exam.ExamID] = exam
	m.order = append(m.order, exam.ExamID)
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) ListAll(_ context.Context) ([]model.Exam, error) {
	var result []model.Exam
	for _, id := range m.order {
		if e, ok := m.exams[id]; ok {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockExamRepo) List(_ context.Context, status, venueID string, date *time.Time, keyword string, offset, limit int) ([]model.Exam, int64, error) {
	all, _ := m.ListAll(context.Background())
	var filtered []model.Exam
	for _, e := range all {
		if status != "" && e.Status != status {
			continue
		}
		if venueID != "" && e.VenueID != venueID {
			continue
		}
		filtered = append(filtered, e)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockExamRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.exams)), nil
}

func (m *mockExamRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, e := range m.exams {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockExamRepo) Update(_ context.Context, exam *model.Exam) error {
	m.exams[exam.ExamID] = exam
	return nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string) error {
	delete(m.exams, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	availabilities map[string]*model.Availability
	order          []string
	seq            int
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{availabilities: make(map[string]*model.Availability)}
}

func (m *mockAvailabilityRepo) Create(_ context.Context, availability *model.Availability) error {
	if availability.AvailabilityID == "" {
		m.seq++
		availability.AvailabilityID = fmt.Sprintf("avail-%d", m.seq)
	}
	availability.CreatedAt = time.Now()
	m.availabilities[availability.AvailabilityID] = availability
	m.order = append(m.order, availability.AvailabilityID)
	return nil
}

func (m *mockAvailabilityRepo) BatchCreate(ctx context.Context, availabilities []model.Availability) error {
	for i := range availabilities {
		if err := m.Create(ctx, &availabilities[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAvailabilityRepo) GetByID(_ context.Context, id string) (*model.Availability, error) {
	if a, ok := m.availabilities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) List(_ context.Context, supervisorID string, date *time.Time, offset, limit int) ([]model.Availability, int64, error) {
	var filtered []model.Availability
	for _, id := range m.order {
		a, ok := m.availabilities[id]
		if !ok {
			continue
		}
		if supervisorID != "" && a.SupervisorID != supervisorID {
			continue
		}
		if date != nil && !a.Date.Equal(*date) {
			continue
		}
		filtered = append(filtered, *a)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockAvailabilityRepo) CountAvailableSupervisors(_ context.Context) (int64, error) {
	seen := make(map[string]bool)
	for _, a := range m.availabilities {
		if a.IsAvailable {
			seen[a.SupervisorID] = true
		}
	}
	return int64(len(seen)), nil
}

func (m *mockAvailabilityRepo) Update(_ context.Context, availability *model.Availability) error {
	m.availabilities[availability.AvailabilityID] = availability
	return nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, id string) error {
	delete(m.availabilities, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	order     []string
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sched-%d", m.seq)
	}
	schedule.CreatedAt = time.Now()
	m.schedules[schedule.ScheduleID] = schedule
	m.order = append(m.order, schedule.ScheduleID)
	return nil
}

func (m *mockScheduleRepo) BatchCreate(ctx context.Context, schedules []model.Schedule) error {
	for i := range schedules {
		if err := m.Create(ctx, &schedules[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, examID, supervisorID, status string, offset, limit int) ([]model.Schedule, int64, error) {
	var filtered []model.Schedule
	for _, id := range m.order {
		s, ok := m.schedules[id]
		if !ok {
			continue
		}
		if examID != "" && s.ExamID != examID {
			continue
		}
		if supervisorID != "" && s.SupervisorID != supervisorID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		filtered = append(filtered, *s)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockScheduleRepo) ListByExam(_ context.Context, examID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, id := range m.order {
		if s, ok := m.schedules[id]; ok && s.ExamID == examID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListBySupervisor(_ context.Context, supervisorID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, id := range m.order {
		if s, ok := m.schedules[id]; ok && s.SupervisorID == supervisorID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) ListAll(_ context.Context) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, id := range m.order {
		if s, ok := m.schedules[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepo) CountByExam(_ context.Context, examID string) (int64, error) {
	var n int64
	for _, s := range m.schedules {
		if s.ExamID == examID {
			n++
		}
	}
	return n, nil
}

func (m *mockScheduleRepo) CountDistinctSupervisors(_ context.Context) (int64, error) {
	seen := make(map[string]bool)
	for _, s := range m.schedules {
		seen[s.SupervisorID] = true
	}
	return int64(len(seen)), nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockScheduleRepo) DeleteByExam(_ context.Context, examID string) error {
	var keep []string
	for _, id := range m.order {
		if s, ok := m.schedules[id]; ok && s.ExamID == examID {
			delete(m.schedules, id)
			continue
		}
		keep = append(keep, id)
	}
	m.order = keep
	return nil
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	logs []model.ActivityLog
	seq  int
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, log *model.ActivityLog) error {
	m.seq++
	if log.ActivityLogID == "" {
		log.ActivityLogID = fmt.Sprintf("log-%d", m.seq)
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	m.logs = append(m.logs, *log)
	if len(m.logs) > model.ActivityLogCap {
		m.logs = m.logs[len(m.logs)-model.ActivityLogCap:]
	}
	return nil
}

func (m *mockActivityLogRepo) ListRecent(_ context.Context, n int) ([]model.ActivityLog, error) {
	var result []model.ActivityLog
	for i := len(m.logs) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, m.logs[i])
	}
	return result, nil
}

// ── 测试辅助 ──

// newMockRepository 构建全 mock 的仓储聚合
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Supervisor:   newMockSupervisorRepo(),
		Venue:        newMockVenueRepo(),
		Exam:         newMockExamRepo(),
		Availability: newMockAvailabilityRepo(),
		Schedule:     newMockScheduleRepo(),
		ActivityLog:  newMockActivityLogRepo(),
	}
}
