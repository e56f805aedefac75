package model

// Subject 课程表 — 对应 subjects
type Subject struct {
	SubjectID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	ShortName string `gorm:"type:varchar(50);not null;default:''"           json:"short_name"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
