package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Supervisor   SupervisorRepository
	Venue        VenueRepository
	Exam         ExamRepository
	Availability AvailabilityRepository
	Schedule     ScheduleRepository
	ActivityLog  ActivityLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Supervisor:   NewSupervisorRepo(db),
		Venue:        NewVenueRepo(db),
		Exam:         NewExamRepo(db),
		Availability: NewAvailabilityRepo(db),
		Schedule:     NewScheduleRepo(db),
		ActivityLog:  NewActivityLogRepo(db),
	}
}
