package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/scheduling"
	"github.com/m4tveevm/is-schedule/internal/service"
	"github.com/m4tveevm/is-schedule/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock LessonService ──

type mockLessonService struct {
	createResult *dto.LessonResponse
	createErr    error
	listResult   []dto.LessonResponse
	listErr      error
	deleteErr    error
}

func (m *mockLessonService) Create(_ context.Context, _ *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockLessonService) List(_ context.Context, _ *dto.LessonListRequest) ([]dto.LessonResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockLessonService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	sessionResult *dto.CalendarSessionResponse
	sessionErr    error
	searchResult  []dto.TeacherBrief
	searchErr     error
	commitResult  *dto.CommitResponse
	commitErr     error
	discardErr    error
}

func (m *mockCalendarService) Open(_ context.Context, _ *dto.OpenCalendarRequest) (*dto.CalendarSessionResponse, error) {
	return m.sessionResult, m.sessionErr
}
func (m *mockCalendarService) View(_ context.Context, _ string) (*dto.CalendarSessionResponse, error) {
	return m.sessionResult, m.sessionErr
}
func (m *mockCalendarService) Book(_ context.Context, _ string, _ *dto.BookLessonRequest) (*dto.CalendarSessionResponse, error) {
	return m.sessionResult, m.sessionErr
}
func (m *mockCalendarService) Unbook(_ context.Context, _ string, _ *dto.UnbookLessonRequest) (*dto.CalendarSessionResponse, error) {
	return m.sessionResult, m.sessionErr
}
func (m *mockCalendarService) SearchTeachers(_ context.Context, _ string, _ *dto.SearchTeachersRequest) ([]dto.TeacherBrief, error) {
	return m.searchResult, m.searchErr
}
func (m *mockCalendarService) Commit(_ context.Context, _ string) (*dto.CommitResponse, error) {
	return m.commitResult, m.commitErr
}
func (m *mockCalendarService) Discard(_ context.Context, _ string) error {
	return m.discardErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportScheduleXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportScheduleICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
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
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		c.Set("token", "raw-token")
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// LessonHandler Tests
// ═══════════════════════════════════════════════════════════

func TestLessonHandler_Create_TeacherBusy(t *testing.T) {
	h := NewLessonHandler(&mockLessonService{createErr: service.ErrTeacherBusyOnDate})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/lessons", jsonBody(dto.CreateLessonRequest{
		GroupID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Date:       "2024-09-02",
		LessonType: "lecture",
		TeacherID:  "550e8400-e29b-41d4-a716-446655440000",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lessons", h.CreateLesson)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24002 {
		t.Errorf("expected error code 24002, got %d", resp.Code)
	}
}

func TestLessonHandler_Create_BudgetExhausted(t *testing.T) {
	h := NewLessonHandler(&mockLessonService{createErr: service.ErrBudgetExhausted})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/lessons", jsonBody(dto.CreateLessonRequest{
		GroupID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Date:       "2024-09-02",
		LessonType: "seminar",
		TeacherID:  "550e8400-e29b-41d4-a716-446655440000",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lessons", h.CreateLesson)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24003 {
		t.Errorf("expected error code 24003, got %d", resp.Code)
	}
}

func TestLessonHandler_List_MissingGroupID(t *testing.T) {
	h := NewLessonHandler(&mockLessonService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/lessons", nil)

	r := gin.New()
	r.GET("/lessons", h.ListLessons)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_Book_NoHoursRemaining(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{sessionErr: scheduling.ErrNoHoursRemaining})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar/sessions/s-1/book", jsonBody(dto.BookLessonRequest{
		Date:       "2024-09-02",
		LessonType: "lecture",
		TeacherID:  "550e8400-e29b-41d4-a716-446655440000",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar/sessions/:id/book", h.BookLesson)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24105 {
		t.Errorf("expected error code 24105, got %d", resp.Code)
	}
}

func TestCalendarHandler_View_SessionExpired(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{sessionErr: service.ErrSessionNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/calendar/sessions/gone", nil)

	r := gin.New()
	r.GET("/calendar/sessions/:id", h.ViewSession)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24101 {
		t.Errorf("expected error code 24101, got %d", resp.Code)
	}
}

func TestCalendarHandler_Unbook_BadIndex(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := httptest.NewRecorder()
	// index 缺失时应被 binding 拦下
	req := httptest.NewRequest("POST", "/calendar/sessions/s-1/unbook", jsonBody(map[string]string{
		"date": "2024-09-02",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar/sessions/:id/unbook", h.UnbookLesson)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalendarHandler_Commit_Success(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{
		commitResult: &dto.CommitResponse{
			SessionID: "s-1",
			Saved:     3,
			Failed:    0,
			Closed:    true,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar/sessions/s-1/commit", nil)

	r := gin.New()
	r.POST("/calendar/sessions/:id/commit", h.CommitSession)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_XLSX_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "schedule_ИС-21_20240902.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/schedule/xlsx?group_id=g-1", nil)

	r := gin.New()
	r.GET("/export/schedule/xlsx", h.ExportScheduleXLSX)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	disposition := w.Header().Get("Content-Disposition")
	if disposition == "" {
		t.Error("expected Content-Disposition header to be set")
	}
	if w.Header().Get("Content-Type") != contentTypeXLSX {
		t.Errorf("unexpected Content-Type: %s", w.Header().Get("Content-Type"))
	}
}

func TestExportHandler_XLSX_MissingGroupID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/schedule/xlsx", nil)

	r := gin.New()
	r.GET("/export/schedule/xlsx", h.ExportScheduleXLSX)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ICS_NoLessons(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoLessons})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/schedule/ics?group_id=g-1", nil)

	r := gin.New()
	r.GET("/export/schedule/ics", h.ExportScheduleICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 24201 {
		t.Errorf("expected error code 24201, got %d", resp.Code)
	}
}
