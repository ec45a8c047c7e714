package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/config"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/api/handler"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/api/middleware"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/jwt"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/redis"
)

// 请求体大小上限（ICS 文件导入为最大的合法请求）
const maxBodyBytes = 8 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证；注册仅限管理员创建账号）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/register", middleware.RoleAuth("admin"), h.Auth.Register)

			// 监考员模块
			supervisors := authorized.Group("/supervisors")
			{
				supervisors.GET("", h.Supervisor.List)
				supervisors.GET("/:id", h.Supervisor.Get)
				supervisors.POST("", middleware.RoleAuth("admin"), h.Supervisor.Create)
				supervisors.PUT("/:id", middleware.RoleAuth("admin"), h.Supervisor.Update)
				supervisors.DELETE("/:id", middleware.RoleAuth("admin"), h.Supervisor.Delete)
			}

			// 考场模块
			venues := authorized.Group("/venues")
			{
				venues.GET("", h.Venue.List)
				venues.GET("/:id", h.Venue.Get)
				venues.POST("", middleware.RoleAuth("admin"), h.Venue.Create)
				venues.PUT("/:id", middleware.RoleAuth("admin"), h.Venue.Update)
				venues.DELETE("/:id", middleware.RoleAuth("admin"), h.Venue.Delete)
			}

			// 考试模块
			exams := authorized.Group("/exams")
			{
				exams.GET("", h.Exam.List)
				exams.GET("/:id", h.Exam.Get)
				exams.POST("", middleware.RoleAuth("admin"), h.Exam.Create)
				exams.PUT("/:id", middleware.RoleAuth("admin"), h.Exam.Update)
				exams.DELETE("/:id", middleware.RoleAuth("admin"), h.Exam.Delete)
			}

			// 可用时间模块（监考员维护本人记录，管理员可指定任意监考员）
			availabilities := authorized.Group("/availabilities")
			{
				availabilities.GET("", h.Availability.List)
				availabilities.POST("", h.Availability.Set)
				availabilities.DELETE("/:id", h.Availability.Delete)
				availabilities.POST("/import", h.Availability.Import)
			}

			// 排班分配模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.List)
				assignments.GET("/my", h.Assignment.ListMy)
				assignments.POST("/auto", middleware.RoleAuth("admin"), h.Assignment.AutoAssign)
				assignments.POST("/manual", middleware.RoleAuth("admin"), h.Assignment.ManualAssign)
				assignments.POST("/generate", middleware.RoleAuth("admin"), h.Assignment.BulkGenerate)
				assignments.POST("/notify", middleware.RoleAuth("admin"), h.Assignment.Notify)
				assignments.PATCH("/:id/status", h.Assignment.UpdateStatus)
				assignments.DELETE("/:id", middleware.RoleAuth("admin"), h.Assignment.Remove)
			}

			// 仪表盘模块
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/stats", h.Dashboard.Stats)
				dashboard.GET("/conflicts", h.Dashboard.Conflicts)
			}

			// 操作日志
			authorized.GET("/activity-logs", h.Dashboard.ActivityLogs)

			// 报表模块
			reports := authorized.Group("/reports")
			{
				reports.GET("/workload", middleware.RoleAuth("admin"), h.Report.Workload)
				reports.GET("/venues", middleware.RoleAuth("admin"), h.Report.Venues)
				reports.GET("/export", middleware.RoleAuth("admin"), h.Report.Export)
			}
		}
	}

	return r
}
