package model

// 班组编号取值范围
const (
	BrigadeMin = 1
	BrigadeMax = 3
)

// BrigadeAssignment 班组教师分配表 — 对应 brigade_assignments
// (小组计划绑定, 计划条目, 班组号) 唯一
type BrigadeAssignment struct {
	AssignmentID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	GroupPlanID   string `gorm:"type:uuid;not null"                             json:"group_plan_id"`
	EntryID       string `gorm:"type:uuid;not null"                             json:"entry_id"`
	BrigadeNumber int    `gorm:"type:smallint;not null"                         json:"brigade_number"` // 1-3
	TeacherID     string `gorm:"type:uuid;not null"                             json:"teacher_id"`
	BaseModel

	// 关联
	GroupPlan *GroupEducationalPlan `gorm:"foreignKey:GroupPlanID;references:GroupPlanID" json:"group_plan,omitempty"`
	Entry     *EducationalPlanEntry `gorm:"foreignKey:EntryID;references:EntryID"         json:"entry,omitempty"`
	Teacher   *Teacher              `gorm:"foreignKey:TeacherID;references:TeacherID"     json:"teacher,omitempty"`
}

// TableName 指定表名
func (BrigadeAssignment) TableName() string { return "brigade_assignments" }
