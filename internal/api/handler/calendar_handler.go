package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/scheduling"
	"github.com/m4tveevm/is-schedule/internal/service"
	"github.com/m4tveevm/is-schedule/pkg/response"
)

// CalendarHandler 排课会话（日历台账）模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// OpenSession 为小组打开排课会话：加载剩余预算与可排课日期
// POST /api/v1/calendar/sessions
func (h *CalendarHandler) OpenSession(c *gin.Context) {
	var req dto.OpenCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.calendarSvc.Open(c.Request.Context(), &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, session)
}

// ViewSession 查看会话当前的预算与日历网格
// GET /api/v1/calendar/sessions/:id
func (h *CalendarHandler) ViewSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "会话ID不能为空")
		return
	}

	session, err := h.calendarSvc.View(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, session)
}

// BookLesson 向草稿落一节课（扣台账，不落库）
// POST /api/v1/calendar/sessions/:id/book
func (h *CalendarHandler) BookLesson(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "会话ID不能为空")
		return
	}

	var req dto.BookLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.calendarSvc.Book(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, session)
}

// UnbookLesson 从草稿撤销一节课（按日期 + 当日序号定位）
// POST /api/v1/calendar/sessions/:id/unbook
func (h *CalendarHandler) UnbookLesson(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "会话ID不能为空")
		return
	}

	var req dto.UnbookLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.calendarSvc.Unbook(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, session)
}

// SearchTeachers 会话内教师联想（传入日期时排除该日草稿已占用的教师）
// GET /api/v1/calendar/sessions/:id/teachers?query=xxx&date=2024-09-02
func (h *CalendarHandler) SearchTeachers(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "会话ID不能为空")
		return
	}

	var req dto.SearchTeachersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teachers, err := h.calendarSvc.SearchTeachers(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, gin.H{"list": teachers})
}

// CommitSession 提交草稿：逐条保存为排课记录，全部成功则销毁会话
// POST /api/v1/calendar/sessions/:id/commit
func (h *CalendarHandler) CommitSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "会话ID不能为空")
		return
	}

	result, err := h.calendarSvc.Commit(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, result)
}

// DiscardSession 丢弃会话（草稿不落库）
// DELETE /api/v1/calendar/sessions/:id
func (h *CalendarHandler) DiscardSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "会话ID不能为空")
		return
	}

	if err := h.calendarSvc.Discard(c.Request.Context(), id); err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 24101, "排课会话不存在或已过期")
	case errors.Is(err, service.ErrNoAvailableDates):
		response.BadRequest(c, 24102, "该小组未设置可排课日期")
	case errors.Is(err, service.ErrNoPlanBound):
		response.BadRequest(c, 24110, "该小组未绑定教学计划")
	case errors.Is(err, scheduling.ErrDateNotAvailable):
		response.BadRequest(c, 24103, "该日期不在小组可排课日期内")
	case errors.Is(err, scheduling.ErrUnknownLessonType):
		response.BadRequest(c, 24104, "未知课型")
	case errors.Is(err, scheduling.ErrNoHoursRemaining):
		response.Conflict(c, 24105, "该课型已无剩余课时")
	case errors.Is(err, scheduling.ErrDateFull):
		response.Conflict(c, 24106, "该日期课次已满")
	case errors.Is(err, scheduling.ErrTeacherBusy):
		response.Conflict(c, 24107, "该教师当天已有课程")
	case errors.Is(err, scheduling.ErrTeacherUnavailable):
		response.Conflict(c, 24108, "该教师当天不可用")
	case errors.Is(err, scheduling.ErrIndexOutOfRange):
		response.BadRequest(c, 24109, "课程序号越界")
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 21001, "小组不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20001, "教师不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/calendar_handler.go
