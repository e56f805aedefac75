package dto

// ── 课程模块 DTO ──

// CreateSubjectRequest 新建课程请求
type CreateSubjectRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=200"`
	ShortName string `json:"short_name" binding:"omitempty,max=50"`
}

// UpdateSubjectRequest 更新课程请求
type UpdateSubjectRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=200"`
	ShortName string `json:"short_name" binding:"omitempty,max=50"`
}

// SubjectListRequest 课程列表查询参数
type SubjectListRequest struct {
	Search string `form:"search" binding:"omitempty,max=200"`
	PaginationRequest
}

// SubjectResponse 课程响应
type SubjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
