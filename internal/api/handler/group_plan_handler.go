package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/service"
	"github.com/m4tveevm/is-schedule/pkg/response"
)

// GroupPlanHandler 小组计划绑定模块 HTTP 处理器
type GroupPlanHandler struct {
	groupPlanSvc service.GroupPlanService
}

// NewGroupPlanHandler 创建 GroupPlanHandler
func NewGroupPlanHandler(groupPlanSvc service.GroupPlanService) *GroupPlanHandler {
	return &GroupPlanHandler{groupPlanSvc: groupPlanSvc}
}

// CreateGroupPlan 绑定小组与教学计划
// POST /api/v1/group-plans
func (h *GroupPlanHandler) CreateGroupPlan(c *gin.Context) {
	var req dto.CreateGroupPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gp, err := h.groupPlanSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGroupPlanError(c, err)
		return
	}

	response.Created(c, gp)
}

// GetGroupPlan 获取绑定详情
// GET /api/v1/group-plans/:id
func (h *GroupPlanHandler) GetGroupPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "绑定ID不能为空")
		return
	}

	gp, err := h.groupPlanSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleGroupPlanError(c, err)
		return
	}

	response.OK(c, gp)
}

// ListGroupPlans 绑定列表（支持按小组名/计划名搜索）
// GET /api/v1/group-plans
func (h *GroupPlanHandler) ListGroupPlans(c *gin.Context) {
	var req dto.GroupPlanListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gps, total, err := h.groupPlanSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.PageResponse{
		Items:    gps,
		Total:    total,
		Page:     req.GetPage(),
		PageSize: req.GetPageSize(),
	})
}

// UpdateGroupPlan 更新绑定（换计划/改截止日期）
// PUT /api/v1/group-plans/:id
func (h *GroupPlanHandler) UpdateGroupPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "绑定ID不能为空")
		return
	}

	var req dto.UpdateGroupPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	gp, err := h.groupPlanSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGroupPlanError(c, err)
		return
	}

	response.OK(c, gp)
}

// DeleteGroupPlan 解除绑定（级联删除班组分配）
// DELETE /api/v1/group-plans/:id
func (h *GroupPlanHandler) DeleteGroupPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "绑定ID不能为空")
		return
	}

	if err := h.groupPlanSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleGroupPlanError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *GroupPlanHandler) handleGroupPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupPlanNotFound):
		response.NotFound(c, 22201, "小组计划绑定不存在")
	case errors.Is(err, service.ErrGroupPlanExists):
		response.Conflict(c, 22202, "该小组已绑定教学计划")
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 21001, "小组不存在")
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 22101, "教学计划不存在")
	default:
		response.InternalError(c)
	}
}
