package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/repository"
)

// ── 报表模块业务错误 ──

var ErrExportGenerateFail = fmt.Errorf("生成导出文件失败")

// ReportService 报表业务接口
type ReportService interface {
	// Workload 工作量报表：逐人统计分配数与利用率，附部门与月度分布
	Workload(ctx context.Context) (*dto.WorkloadReportResponse, error)
	// VenueUsage 考场使用报表：逐考场统计考试场次
	VenueUsage(ctx context.Context) (*dto.VenueReportResponse, error)
	// ExportWorkbook 生成 xlsx 工作簿（概览 / 工作量 / 考场使用三张表）
	ExportWorkbook(ctx context.Context) (*bytes.Buffer, string, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) Workload(ctx context.Context) (*dto.WorkloadReportResponse, error) {
	supervisors, err := s.repo.Supervisor.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询监考员列表失败", zap.Error(err))
		return nil, err
	}
	schedules, err := s.repo.Schedule.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询分配列表失败", zap.Error(err))
		return nil, err
	}
	exams, err := s.repo.Exam.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询考试列表失败", zap.Error(err))
		return nil, err
	}

	// 逐监考员分配数
	countBySupervisor := make(map[string]int)
	for _, schedule := range schedules {
		countBySupervisor[schedule.SupervisorID]++
	}

	workloads := make([]dto.SupervisorWorkload, 0, len(supervisors))
	assignedCount := 0
	departmentBreakdown := make(map[string]int)
	for i := range supervisors {
		sup := &supervisors[i]
		n := countBySupervisor[sup.SupervisorID]
		if n > 0 {
			assignedCount++
		}

		department := ""
		if sup.User != nil {
			department = sup.User.Department
		}
		departmentBreakdown[department] += n

		utilization := 0.0
		if sup.MaxAssignments > 0 {
			utilization = float64(n) / float64(sup.MaxAssignments) * 100
		}
		workloads = append(workloads, dto.SupervisorWorkload{
			SupervisorID:   sup.SupervisorID,
			FullName:       sup.FullName,
			Department:     department,
			Assignments:    n,
			MaxAssignments: sup.MaxAssignments,
			Utilization:    utilization,
		})
	}

	// 月度考试分布（"2006-01" → 场次）
	monthlyDistribution := make(map[string]int)
	for _, exam := range exams {
		monthlyDistribution[exam.Date.Format("2006-01")]++
	}

	utilizationRate := 0.0
	if len(supervisors) > 0 {
		utilizationRate = float64(assignedCount) / float64(len(supervisors)) * 100
	}

	return &dto.WorkloadReportResponse{
		UtilizationRate:     utilizationRate,
		Supervisors:         workloads,
		DepartmentBreakdown: departmentBreakdown,
		MonthlyDistribution: monthlyDistribution,
		TotalAssignments:    int64(len(schedules)),
	}, nil
}

func (s *reportService) VenueUsage(ctx context.Context) (*dto.VenueReportResponse, error) {
	venues, err := s.repo.Venue.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询考场列表失败", zap.Error(err))
		return nil, err
	}
	exams, err := s.repo.Exam.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询考试列表失败", zap.Error(err))
		return nil, err
	}

	countByVenue := make(map[string]int)
	for _, exam := range exams {
		countByVenue[exam.VenueID]++
	}

	usage := make([]dto.VenueUsage, 0, len(venues))
	for i := range venues {
		venue := &venues[i]
		usage = append(usage, dto.VenueUsage{
			VenueID:  venue.VenueID,
			Name:     venue.Name,
			Capacity: venue.Capacity,
			Exams:    countByVenue[venue.VenueID],
		})
	}
	return &dto.VenueReportResponse{Venues: usage}, nil
}

func (s *reportService) ExportWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	workload, err := s.Workload(ctx)
	if err != nil {
		return nil, "", err
	}
	venueReport, err := s.VenueUsage(ctx)
	if err != nil {
		return nil, "", err
	}
	stats, err := s.collectOverview(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Sheet 1: 概览 ──
	overviewSheet := "概览"
	idx, _ := f.NewSheet(overviewSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.SetColWidth(overviewSheet, "A", "A", 24)
	f.SetColWidth(overviewSheet, "B", "B", 14)
	f.SetCellValue(overviewSheet, "A1", "指标")
	f.SetCellValue(overviewSheet, "B1", "数值")
	f.SetCellStyle(overviewSheet, "A1", "B1", headerStyle)
	row := 2
	for _, item := range stats {
		f.SetCellValue(overviewSheet, cell("A", row), item.label)
		f.SetCellValue(overviewSheet, cell("B", row), item.value)
		row++
	}

	// ── Sheet 2: 监考工作量 ──
	workloadSheet := "监考工作量"
	f.NewSheet(workloadSheet)
	f.SetColWidth(workloadSheet, "A", "A", 18)
	f.SetColWidth(workloadSheet, "B", "B", 16)
	f.SetColWidth(workloadSheet, "C", "E", 12)
	headers := []string{"姓名", "部门", "分配数", "上限", "利用率(%)"}
	for i, h := range headers {
		f.SetCellValue(workloadSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(workloadSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	row = 2
	for _, w := range workload.Supervisors {
		f.SetCellValue(workloadSheet, cell("A", row), w.FullName)
		f.SetCellValue(workloadSheet, cell("B", row), w.Department)
		f.SetCellValue(workloadSheet, cell("C", row), w.Assignments)
		f.SetCellValue(workloadSheet, cell("D", row), w.MaxAssignments)
		f.SetCellValue(workloadSheet, cell("E", row), fmt.Sprintf("%.1f", w.Utilization))
		row++
	}

	// ── Sheet 3: 考场使用 ──
	venueSheet := "考场使用"
	f.NewSheet(venueSheet)
	f.SetColWidth(venueSheet, "A", "A", 20)
	f.SetColWidth(venueSheet, "B", "C", 12)
	venueHeaders := []string{"考场", "容量", "考试场次"}
	for i, h := range venueHeaders {
		f.SetCellValue(venueSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(venueSheet, "A1", cell(colName(len(venueHeaders)-1), 1), headerStyle)
	row = 2
	for _, v := range venueReport.Venues {
		f.SetCellValue(venueSheet, cell("A", row), v.Name)
		f.SetCellValue(venueSheet, cell("B", row), v.Capacity)
		f.SetCellValue(venueSheet, cell("C", row), v.Exams)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("监考安排报表_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

type overviewItem struct {
	label string
	value int64
}

func (s *reportService) collectOverview(ctx context.Context) ([]overviewItem, error) {
	totalExams, err := s.repo.Exam.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSupervisors, err := s.repo.Supervisor.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalVenues, err := s.repo.Venue.Count(ctx)
	if err != nil {
		return nil, err
	}
	assignedSupervisors, err := s.repo.Schedule.CountDistinctSupervisors(ctx)
	if err != nil {
		return nil, err
	}
	return []overviewItem{
		{"考试总数", totalExams},
		{"监考员总数", totalSupervisors},
		{"考场总数", totalVenues},
		{"已有分配的监考员数", assignedSupervisors},
	}, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
