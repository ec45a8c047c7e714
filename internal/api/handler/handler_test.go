package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testExamID       = "11111111-1111-1111-1111-111111111111"
	testSupervisorID = "22222222-2222-2222-2222-222222222222"
	testScheduleID   = "33333333-3333-3333-3333-333333333333"
)

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	registerResult *dto.RegisterResponse
	registerErr    error
	currentResult  *dto.UserResponse
	currentErr     error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest, _ string) (*dto.RegisterResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.currentResult, m.currentErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	autoResult   *dto.AutoAssignResponse
	autoErr      error
	manualResult *dto.ScheduleResponse
	manualErr    error
	removeErr    error
	bulkResult   *dto.BulkGenerateResponse
	bulkErr      error
	statusResult *dto.ScheduleResponse
	statusErr    error
	notifyResult *dto.NotifyAssignmentsResponse
	notifyErr    error
	listResult   []dto.ScheduleResponse
	listTotal    int64
	listErr      error
	myResult     []dto.ScheduleResponse
	myErr        error
	getResult    *dto.ScheduleResponse
	getErr       error
}

func (m *mockAssignmentService) AutoAssign(_ context.Context, _, _ string) (*dto.AutoAssignResponse, error) {
	return m.autoResult, m.autoErr
}
func (m *mockAssignmentService) ManualAssign(_ context.Context, _ *dto.ManualAssignRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.manualResult, m.manualErr
}
func (m *mockAssignmentService) RemoveAssignment(_ context.Context, _, _ string) error {
	return m.removeErr
}
func (m *mockAssignmentService) BulkGenerate(_ context.Context, _ string) (*dto.BulkGenerateResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockAssignmentService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateScheduleStatusRequest, _, _ string) (*dto.ScheduleResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockAssignmentService) NotifyAssignments(_ context.Context, _ *dto.NotifyAssignmentsRequest, _ string) (*dto.NotifyAssignmentsResponse, error) {
	return m.notifyResult, m.notifyErr
}
func (m *mockAssignmentService) ListSchedules(_ context.Context, _ *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockAssignmentService) ListMySchedules(_ context.Context, _ string) ([]dto.ScheduleResponse, error) {
	return m.myResult, m.myErr
}
func (m *mockAssignmentService) GetByID(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}

// ── Mock AvailabilityService ──

type mockAvailabilityService struct {
	setResult    *dto.AvailabilityResponse
	setErr       error
	listResult   []dto.AvailabilityResponse
	listTotal    int64
	listErr      error
	deleteErr    error
	importResult *dto.ImportAvailabilityResponse
	importErr    error
}

func (m *mockAvailabilityService) Set(_ context.Context, _ *dto.SetAvailabilityRequest, _, _ string) (*dto.AvailabilityResponse, error) {
	return m.setResult, m.setErr
}
func (m *mockAvailabilityService) List(_ context.Context, _ *dto.AvailabilityListRequest, _, _ string) ([]dto.AvailabilityResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockAvailabilityService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}
func (m *mockAvailabilityService) Import(_ context.Context, _ *dto.ImportAvailabilityRequest, _, _ string) (*dto.ImportAvailabilityResponse, error) {
	return m.importResult, m.importErr
}

// ── Mock ExamService ──

type mockExamService struct {
	createResult *dto.ExamResponse
	createErr    error
	getResult    *dto.ExamResponse
	getErr       error
	listResult   []dto.ExamResponse
	listTotal    int64
	listErr      error
	updateResult *dto.ExamResponse
	updateErr    error
	deleteErr    error
}

func (m *mockExamService) Create(_ context.Context, _ *dto.CreateExamRequest, _ string) (*dto.ExamResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockExamService) GetByID(_ context.Context, _ string) (*dto.ExamResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockExamService) List(_ context.Context, _ *dto.ExamListRequest) ([]dto.ExamResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockExamService) Update(_ context.Context, _ string, _ *dto.UpdateExamRequest, _ string) (*dto.ExamResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockExamService) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

// ── Mock DashboardService ──

type mockDashboardService struct {
	statsResult     *dto.DashboardStatsResponse
	statsErr        error
	conflictsResult []dto.SchedulingConflict
	conflictsErr    error
	activityResult  []dto.ActivityLogResponse
	activityErr     error
}

func (m *mockDashboardService) GetStats(_ context.Context) (*dto.DashboardStatsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockDashboardService) ListConflicts(_ context.Context) ([]dto.SchedulingConflict, error) {
	return m.conflictsResult, m.conflictsErr
}
func (m *mockDashboardService) ListActivity(_ context.Context, _ int) ([]dto.ActivityLogResponse, error) {
	return m.activityResult, m.activityErr
}

// ── Mock ReportService ──

type mockReportService struct {
	workloadResult *dto.WorkloadReportResponse
	workloadErr    error
	venueResult    *dto.VenueReportResponse
	venueErr       error
	exportBuf      *bytes.Buffer
	exportName     string
	exportErr      error
}

func (m *mockReportService) Workload(_ context.Context) (*dto.WorkloadReportResponse, error) {
	return m.workloadResult, m.workloadErr
}
func (m *mockReportService) VenueUsage(_ context.Context) (*dto.VenueReportResponse, error) {
	return m.venueResult, m.venueErr
}
func (m *mockReportService) ExportWorkbook(_ context.Context) (*bytes.Buffer, string, error) {
	return m.exportBuf, m.exportName, m.exportErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", role)
		c.Set("token_jti", "test-jti")
		c.Set("token_ttl", 15*time.Minute)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func doJSON(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "jsmith",
		Password: "Test1234",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", bytes.NewReader([]byte("invalid json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, nil)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	w := doJSON(r, "POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "jsmith",
		Password: "wrong-password",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	w := doJSON(r, "POST", "/auth/refresh", jsonBody(map[string]string{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Register_UsernameExists(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrUsernameExists}, nil)

	r := gin.New()
	r.POST("/auth/register", setAuth("admin"), h.Register)
	w := doJSON(r, "POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Username:   "jsmith",
		Email:      "jsmith@university.edu",
		Department: "Computer Science",
		Password:   "Test1234",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	w := doJSON(r, "GET", "/auth/me", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_AutoAssign_Success(t *testing.T) {
	mock := &mockAssignmentService{
		autoResult: &dto.AutoAssignResponse{
			ExamID:   testExamID,
			Assigned: 2,
		},
	}
	h := NewAssignmentHandler(mock)

	r := gin.New()
	r.POST("/assignments/auto", setAuth("admin"), h.AutoAssign)
	w := doJSON(r, "POST", "/assignments/auto", jsonBody(dto.AutoAssignRequest{
		ExamID: testExamID,
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAssignmentHandler_AutoAssign_InsufficientReturns409(t *testing.T) {
	mock := &mockAssignmentService{
		autoErr: &service.InsufficientSupervisorsError{Need: 3, Have: 1},
	}
	h := NewAssignmentHandler(mock)

	r := gin.New()
	r.POST("/assignments/auto", setAuth("admin"), h.AutoAssign)
	w := doJSON(r, "POST", "/assignments/auto", jsonBody(dto.AutoAssignRequest{
		ExamID: testExamID,
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
}

func TestAssignmentHandler_AutoAssign_ExamNotFound(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{autoErr: service.ErrExamNotFound})

	r := gin.New()
	r.POST("/assignments/auto", setAuth("admin"), h.AutoAssign)
	w := doJSON(r, "POST", "/assignments/auto", jsonBody(dto.AutoAssignRequest{
		ExamID: testExamID,
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

func TestAssignmentHandler_ManualAssign_Created(t *testing.T) {
	mock := &mockAssignmentService{
		manualResult: &dto.ScheduleResponse{ID: testScheduleID, Status: "assigned"},
	}
	h := NewAssignmentHandler(mock)

	r := gin.New()
	r.POST("/assignments/manual", setAuth("admin"), h.ManualAssign)
	w := doJSON(r, "POST", "/assignments/manual", jsonBody(dto.ManualAssignRequest{
		ExamID:       testExamID,
		SupervisorID: testSupervisorID,
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAssignmentHandler_UpdateStatus_InvalidStatusRejected(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{})

	r := gin.New()
	r.PATCH("/assignments/:id/status", setAuth("supervisor"), h.UpdateStatus)
	w := doJSON(r, "PATCH", "/assignments/"+testScheduleID+"/status", jsonBody(map[string]string{
		"status": "cancelled",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_UpdateStatus_NotOwned(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{statusErr: service.ErrScheduleNotOwned})

	r := gin.New()
	r.PATCH("/assignments/:id/status", setAuth("supervisor"), h.UpdateStatus)
	w := doJSON(r, "PATCH", "/assignments/"+testScheduleID+"/status", jsonBody(dto.UpdateScheduleStatusRequest{
		Status: "confirmed",
	}))

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10003 {
		t.Errorf("expected error code 10003, got %d", resp.Code)
	}
}

func TestAssignmentHandler_BulkGenerate_Success(t *testing.T) {
	mock := &mockAssignmentService{
		bulkResult: &dto.BulkGenerateResponse{
			ExamsProcessed: 5,
			ExamsAssigned:  3,
			ExamsSkipped:   1,
			ExamsFailed:    1,
			Failures:       []string{"CS101: 监考员数量不足: 需要 3 人, 现有 2 人"},
		},
	}
	h := NewAssignmentHandler(mock)

	r := gin.New()
	r.POST("/assignments/generate", setAuth("admin"), h.BulkGenerate)
	w := doJSON(r, "POST", "/assignments/generate", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AvailabilityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAvailabilityHandler_Set_Created(t *testing.T) {
	mock := &mockAvailabilityService{
		setResult: &dto.AvailabilityResponse{ID: "avail-1", Date: "2026-09-15"},
	}
	h := NewAvailabilityHandler(mock)

	r := gin.New()
	r.POST("/availabilities", setAuth("supervisor"), h.Set)
	w := doJSON(r, "POST", "/availabilities", jsonBody(dto.SetAvailabilityRequest{
		Date:        "2026-09-15",
		IsAvailable: true,
		TimeSlots: []dto.TimeSlotInput{
			{StartTime: "08:00", EndTime: "12:00", IsAvailable: true},
		},
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAvailabilityHandler_Set_BadDate(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{})

	r := gin.New()
	r.POST("/availabilities", setAuth("supervisor"), h.Set)
	w := doJSON(r, "POST", "/availabilities", jsonBody(map[string]string{
		"date": "15/09/2026",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAvailabilityHandler_Import_SourceMissing(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{importErr: service.ErrImportSourceMissing})

	r := gin.New()
	r.POST("/availabilities/import", setAuth("supervisor"), h.Import)
	w := doJSON(r, "POST", "/availabilities/import", jsonBody(dto.ImportAvailabilityRequest{}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16003 {
		t.Errorf("expected error code 16003, got %d", resp.Code)
	}
}

func TestAvailabilityHandler_Import_Success(t *testing.T) {
	mock := &mockAvailabilityService{
		importResult: &dto.ImportAvailabilityResponse{Imported: 4, Skipped: 1},
	}
	h := NewAvailabilityHandler(mock)

	r := gin.New()
	r.POST("/availabilities/import", setAuth("supervisor"), h.Import)
	w := doJSON(r, "POST", "/availabilities/import", jsonBody(dto.ImportAvailabilityRequest{
		Content: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExamHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExamHandler_Create_VenueNotFound(t *testing.T) {
	h := NewExamHandler(&mockExamService{createErr: service.ErrExamVenueNotFound})

	r := gin.New()
	r.POST("/exams", setAuth("admin"), h.Create)
	w := doJSON(r, "POST", "/exams", jsonBody(dto.CreateExamRequest{
		CourseCode:       "CS101",
		CourseName:       "Introduction to Programming",
		Date:             "2026-09-20",
		StartTime:        "09:00",
		EndTime:          "11:00",
		VenueID:          testSupervisorID,
		ExpectedStudents: 80,
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestExamHandler_List_Success(t *testing.T) {
	mock := &mockExamService{
		listResult: []dto.ExamResponse{{ID: testExamID, CourseCode: "CS101"}},
		listTotal:  1,
	}
	h := NewExamHandler(mock)

	r := gin.New()
	r.GET("/exams", setAuth("admin"), h.List)
	w := doJSON(r, "GET", "/exams?page=1&page_size=20", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDashboardHandler_Stats_Success(t *testing.T) {
	mock := &mockDashboardService{
		statsResult: &dto.DashboardStatsResponse{
			TotalExams:       10,
			TotalSupervisors: 5,
			TotalVenues:      3,
		},
	}
	h := NewDashboardHandler(mock)

	r := gin.New()
	r.GET("/dashboard/stats", setAuth("admin"), h.Stats)
	w := doJSON(r, "GET", "/dashboard/stats", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestDashboardHandler_Conflicts_EmptyList(t *testing.T) {
	mock := &mockDashboardService{conflictsResult: []dto.SchedulingConflict{}}
	h := NewDashboardHandler(mock)

	r := gin.New()
	r.GET("/dashboard/conflicts", setAuth("admin"), h.Conflicts)
	w := doJSON(r, "GET", "/dashboard/conflicts", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code int                      `json:"code"`
		Data []dto.SchedulingConflict `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data == nil {
		t.Error("expected empty array, got null")
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected 0 conflicts, got %d", len(resp.Data))
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Export_SetsDownloadHeaders(t *testing.T) {
	mock := &mockReportService{
		exportBuf:  bytes.NewBufferString("xlsx-bytes"),
		exportName: "监考安排报表_20260901.xlsx",
	}
	h := NewReportHandler(mock)

	r := gin.New()
	r.GET("/reports/export", setAuth("admin"), h.Export)
	w := doJSON(r, "GET", "/reports/export", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Error("expected workbook bytes in body")
	}
}

func TestReportHandler_Export_ServiceError(t *testing.T) {
	h := NewReportHandler(&mockReportService{exportErr: service.ErrExportGenerateFail})

	r := gin.New()
	r.GET("/reports/export", setAuth("admin"), h.Export)
	w := doJSON(r, "GET", "/reports/export", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
