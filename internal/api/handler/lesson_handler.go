package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/service"
	"github.com/m4tveevm/is-schedule/pkg/response"
)

// LessonHandler 排课记录模块 HTTP 处理器
type LessonHandler struct {
	lessonSvc service.LessonService
}

// NewLessonHandler 创建 LessonHandler
func NewLessonHandler(lessonSvc service.LessonService) *LessonHandler {
	return &LessonHandler{lessonSvc: lessonSvc}
}

// CreateLesson 保存单节课（走完整冲突与预算校验）
// POST /api/v1/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lesson, err := h.lessonSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.Created(c, lesson)
}

// ListLessons 查询小组排课记录（可按日期区间过滤）
// GET /api/v1/lessons?group_id=xxx&date_from=2024-09-01&date_to=2024-12-31
func (h *LessonHandler) ListLessons(c *gin.Context) {
	var req dto.LessonListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lessons, err := h.lessonSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, gin.H{"list": lessons})
}

// DeleteLesson 删除排课记录（释放对应课时）
// DELETE /api/v1/lessons/:id
func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "记录ID不能为空")
		return
	}

	if err := h.lessonSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *LessonHandler) handleLessonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 24001, "排课记录不存在")
	case errors.Is(err, service.ErrTeacherBusyOnDate):
		response.Conflict(c, 24002, "该教师当日已有课")
	case errors.Is(err, service.ErrBudgetExhausted):
		response.Conflict(c, 24003, "该课型计划课时已排完")
	case errors.Is(err, service.ErrDateCapacityFull):
		response.Conflict(c, 24004, "该日期课次已满")
	case errors.Is(err, service.ErrTeacherUnavailable):
		response.Conflict(c, 24005, "该教师当日不可用")
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 21001, "小组不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20001, "教师不存在")
	default:
		response.InternalError(c)
	}
}
