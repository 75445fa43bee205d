package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/ikeike55momo/schedule/internal/auth"
	"github.com/ikeike55momo/schedule/internal/config"
	"github.com/ikeike55momo/schedule/internal/handlers"
)

// HoverPath is the live preview socket. It authenticates by query token, so
// the request logger skips it.
const HoverPath = "/api/v1/calendar/hover"

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, svc Services, store *auth.Store) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)
	api := r.Group("/api/v1", auth.RequireSession(verifier, store))
	socket := r.Group("/api/v1", auth.RequireSocketSession(verifier, store))
	adminOnly := auth.RequireAdmin(svc.Admin)

	registerSessionRoutes(api, handlers.NewSessionHandler(store, svc.Admin))
	registerScheduleRoutes(api, handlers.NewScheduleHandler(svc.Schedules))
	registerTaskRoutes(api, handlers.NewTaskHandler(svc.Tasks))
	registerTimeRecordRoutes(api, handlers.NewTimeRecordHandler(svc.TimeRecords))
	registerCalendarRoutes(api, handlers.NewCalendarHandler(svc.Calendar))
	socket.GET("/calendar/hover", handlers.NewHoverHandler(svc.Calendar).Serve)
	registerSyncRoutes(api, handlers.NewSyncHandler(svc.Sync, cfg.Sync.SpreadsheetID, cfg.Sync.SheetRange), adminOnly)
	registerDocumentRoutes(api, handlers.NewDocumentHandler(svc.Documents))
	registerArticleRoutes(api, handlers.NewArticleHandler(svc.Articles))
	registerProfileRoutes(api, handlers.NewProfileHandler(svc.Profiles))
	registerAdminRoutes(api.Group("/admin", adminOnly), handlers.NewAdminHandler(svc.Admin))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Team Schedule API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerSessionRoutes(api *gin.RouterGroup, h *handlers.SessionHandler) {
	api.GET("/session", h.Me)
	api.POST("/session/logout", h.Logout)
}

func registerScheduleRoutes(api *gin.RouterGroup, h *handlers.ScheduleHandler) {
	api.GET("/schedules", h.List)
	api.POST("/schedules", h.Create)
	api.GET("/schedules/export", h.Export)
	api.PATCH("/schedules/:id", h.Update)
	api.DELETE("/schedules/:id", h.Delete)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/tasks", h.List)
	api.POST("/tasks", h.Create)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.POST("/tasks/:id/progress", h.Progress)
	api.POST("/tasks/:id/toggle", h.Toggle)
}

func registerTimeRecordRoutes(api *gin.RouterGroup, h *handlers.TimeRecordHandler) {
	api.GET("/time-records", h.List)
	api.POST("/time-records", h.Create)
	api.DELETE("/time-records/:id", h.Delete)
}

func registerCalendarRoutes(api *gin.RouterGroup, h *handlers.CalendarHandler) {
	api.GET("/calendar", h.Month)
	api.GET("/calendar/days/:date", h.Day)
	api.GET("/calendar/preview", h.Preview)
}

func registerSyncRoutes(api *gin.RouterGroup, h *handlers.SyncHandler, adminOnly gin.HandlerFunc) {
	api.POST("/sync/calendar", h.Calendar)
	api.POST("/sync/sheets", adminOnly, h.Sheets)
}

func registerDocumentRoutes(api *gin.RouterGroup, h *handlers.DocumentHandler) {
	api.GET("/documents", h.List)
	api.POST("/documents", h.Create)
	api.DELETE("/documents/:id", h.Delete)
}

func registerArticleRoutes(api *gin.RouterGroup, h *handlers.ArticleHandler) {
	api.GET("/articles", h.List)
	api.GET("/articles/search", h.Search)
	api.POST("/articles", h.Create)
}

func registerProfileRoutes(api *gin.RouterGroup, h *handlers.ProfileHandler) {
	api.GET("/profile", h.Get)
	api.PATCH("/profile", h.Update)
}

func registerAdminRoutes(admin *gin.RouterGroup, h *handlers.AdminHandler) {
	admin.GET("/allowed-users", h.ListAllowed)
	admin.POST("/allowed-users", h.AddAllowed)
	admin.DELETE("/allowed-users/:id", h.RemoveAllowed)
}
