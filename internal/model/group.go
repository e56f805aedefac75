package model

// Group 学员小组表 — 对应 groups
type Group struct {
	GroupID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	BaseModel
}

// TableName 指定表名
func (Group) TableName() string { return "groups" }

// GroupAvailableDates 小组可排课日期表 — 对应 group_available_dates
// 每个小组至多一行，日期集合整体覆盖更新，保持去重升序
type GroupAvailableDates struct {
	AvailableID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"available_id"`
	GroupID     string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"group_id"`
	Dates       DateArray `gorm:"type:date[];not null"                           json:"dates"`
	BaseModel

	// 关联
	Group *Group `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
}

// TableName 指定表名
func (GroupAvailableDates) TableName() string { return "group_available_dates" }
