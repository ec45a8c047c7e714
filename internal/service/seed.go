package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/config"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/model"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// SeedDemoData 在 users 表为空时写入固定演示数据：
// 1 管理员 + 3 监考员（共用演示口令）+ 3 考场 + 次日 08:00–12:00 / 13:00–17:00 可用时间。
// 表非空时不做任何事。
func SeedDemoData(ctx context.Context, cfg *config.Config, repo *repository.Repository, logger *zap.Logger) error {
	if !cfg.Seed.DemoEnabled {
		return nil
	}

	n, err := repo.User.Count(ctx)
	if err != nil {
		return fmt.Errorf("统计用户数失败: %w", err)
	}
	if n > 0 {
		return nil
	}

	password := cfg.Seed.DemoPassword
	if password == "" {
		password = "password"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("演示口令哈希失败: %w", err)
	}

	// ── 管理员 ──
	admin := &model.User{
		Username:     "admin",
		Email:        "admin@university.edu",
		Department:   "Examination Office",
		Role:         model.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := repo.User.Create(ctx, admin); err != nil {
		return fmt.Errorf("写入管理员失败: %w", err)
	}

	// ── 监考员 ──
	demoSupervisors := []struct {
		username   string
		email      string
		department string
		fullName   string
		phone      string
		specs      []string
	}{
		{"jsmith", "j.smith@university.edu", "Computer Science", "John Smith", "555-0101", []string{"Computer Science", "Mathematics"}},
		{"mjohnson", "m.johnson@university.edu", "Mathematics", "Mary Johnson", "555-0102", []string{"Mathematics", "Statistics"}},
		{"dwilliams", "d.williams@university.edu", "Physics", "David Williams", "555-0103", []string{"Physics"}},
	}

	var supervisorIDs []string
	for _, d := range demoSupervisors {
		user := &model.User{
			Username:     d.username,
			Email:        d.email,
			Department:   d.department,
			Role:         model.RoleSupervisor,
			PasswordHash: string(hash),
		}
		if err := repo.User.Create(ctx, user); err != nil {
			return fmt.Errorf("写入演示用户 %s 失败: %w", d.username, err)
		}
		supervisor := &model.Supervisor{
			UserID:              user.UserID,
			FullName:            d.fullName,
			Phone:               d.phone,
			MaxAssignments:      defaultMaxAssignments,
			MaxDailyAssignments: defaultMaxDailyAssignments,
			Specializations:     model.StringArray(d.specs),
			Status:              "active",
		}
		if err := repo.Supervisor.Create(ctx, supervisor); err != nil {
			return fmt.Errorf("写入演示监考员 %s 失败: %w", d.fullName, err)
		}
		supervisorIDs = append(supervisorIDs, supervisor.SupervisorID)
	}

	// ── 考场 ──
	demoVenues := []model.Venue{
		{Name: "Main Hall A", Capacity: 200, Building: "Main Building", Floor: "1", Type: "hall",
			Status: "available", Facilities: model.StringArray{"projector", "air conditioning"}, IsActive: true},
		{Name: "Lecture Room 101", Capacity: 60, Building: "Science Block", Floor: "1", Type: "classroom",
			Status: "available", Facilities: model.StringArray{"whiteboard"}, IsActive: true},
		{Name: "Computer Lab 3", Capacity: 40, Building: "Engineering Block", Floor: "3", Type: "lab",
			Status: "available", Facilities: model.StringArray{"computers", "projector"}, IsActive: true},
	}
	for i := range demoVenues {
		if err := repo.Venue.Create(ctx, &demoVenues[i]); err != nil {
			return fmt.Errorf("写入演示考场 %s 失败: %w", demoVenues[i].Name, err)
		}
	}

	// ── 次日可用时间 ──
	tomorrow := time.Now().AddDate(0, 0, 1)
	tomorrow = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	slots := model.TimeSlotList{
		{StartTime: "08:00", EndTime: "12:00", IsAvailable: true},
		{StartTime: "13:00", EndTime: "17:00", IsAvailable: true},
	}
	availabilities := make([]model.Availability, 0, len(supervisorIDs))
	for _, id := range supervisorIDs {
		availabilities = append(availabilities, model.Availability{
			SupervisorID: id,
			Date:         tomorrow,
			TimeSlots:    slots,
			IsAvailable:  true,
		})
	}
	if err := repo.Availability.BatchCreate(ctx, availabilities); err != nil {
		return fmt.Errorf("写入演示可用时间失败: %w", err)
	}

	logger.Info("演示数据写入完成",
		zap.Int("supervisors", len(supervisorIDs)),
		zap.Int("venues", len(demoVenues)))
	return nil
}
