package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classroom-hub/config"
	"classroom-hub/internal/api/handler"
	"classroom-hub/internal/api/middleware"
	"classroom-hub/pkg/jwt"
	"classroom-hub/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rdb, 120, time.Minute))
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// reference data
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/departments", h.Catalog.ListDepartments)
			catalog.GET("/teachers", h.Catalog.ListTeachers)
			catalog.GET("/room-types", h.Catalog.ListRoomTypes)
			catalog.GET("/time-slots", h.Catalog.ListTimeSlots)
		}

		// room management
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", h.Room.List)
			rooms.GET("/:id", h.Room.GetByID)
			rooms.POST("", middleware.RoleAuth("admin"), h.Room.Create)
			rooms.PUT("/:id", middleware.RoleAuth("admin"), h.Room.Update)
			rooms.DELETE("/:id", middleware.RoleAuth("admin"), h.Room.Delete)
		}

		// class sections
		classes := v1.Group("/classes")
		{
			classes.GET("", h.Class.List)
			classes.GET("/:id", h.Class.GetByID)
			classes.GET("/:id/calendar", h.Calendar.DownloadClassCalendar)
			classes.POST("", middleware.RoleAuth("admin"), h.Class.Create)
			classes.PUT("/:id", middleware.RoleAuth("admin"), h.Class.Update)
			classes.DELETE("/:id", middleware.RoleAuth("admin"), h.Class.Delete)
		}

		// room assignment
		schedules := v1.Group("/schedules")
		{
			schedules.GET("/:id/eligible-rooms", middleware.RoleAuth("admin", "manager"), h.Schedule.ListEligibleRooms)
			schedules.POST("/:id/room", middleware.RoleAuth("admin", "manager"), h.Schedule.AssignRoom)
			schedules.DELETE("/:id/room", middleware.RoleAuth("admin", "manager"), h.Schedule.UnassignRoom)
		}

		// schedule exceptions
		exceptions := v1.Group("/exceptions")
		exceptions.Use(middleware.RoleAuth("admin", "manager"))
		{
			exceptions.GET("", h.Exception.List)
			exceptions.GET("/eligible-schedules", h.Exception.ListEligibleSchedules)
			exceptions.GET("/:id", h.Exception.GetByID)
			exceptions.POST("", h.Exception.Create)
			exceptions.PUT("/:id", h.Exception.Update)
			exceptions.DELETE("/:id", h.Exception.Delete)
		}

		// approval pipeline
		requests := v1.Group("/requests")
		{
			requests.GET("", h.Request.List)
			requests.GET("/:id", h.Request.GetByID)
			requests.POST("", h.Request.Create)
			requests.PUT("/:id/status", middleware.RoleAuth("admin", "manager"), h.Request.UpdateStatus)
		}

		// exports
		export := v1.Group("/export")
		{
			export.GET("/room-allocation", middleware.RoleAuth("admin", "manager"), h.Export.ExportRoomAllocation)
		}
	}

	return r
}
