package dto

// ── 班组分配模块 DTO ──

// BrigadeAssignmentInput 单条班组分配输入
type BrigadeAssignmentInput struct {
	BrigadeNumber int    `json:"brigade_number" binding:"required,min=1,max=3"`
	TeacherID     string `json:"teacher_id"     binding:"required,uuid"`
}

// ReplaceBrigadeAssignmentsRequest 整体覆盖某计划条目的班组分配
// 未出现的班组号视为删除，已存在的按教师差异更新
type ReplaceBrigadeAssignmentsRequest struct {
	EntryID     string                   `json:"entry_id"    binding:"required,uuid"`
	Assignments []BrigadeAssignmentInput `json:"assignments" binding:"required,dive"`
}

// ── 响应 ──

// BrigadeAssignmentResponse 班组分配响应
type BrigadeAssignmentResponse struct {
	ID            string `json:"id"`
	GroupPlanID   string `json:"group_plan_id"`
	EntryID       string `json:"entry_id"`
	BrigadeNumber int    `json:"brigade_number"`
	TeacherID     string `json:"teacher_id"`
	TeacherName   string `json:"teacher_name,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// EntryBrigadesResponse 某计划条目的班组分配集合
type EntryBrigadesResponse struct {
	EntryID     string                      `json:"entry_id"`
	Assignments []BrigadeAssignmentResponse `json:"assignments"`
}
