package app

import (
	"github.com/Joshcode41/todo-app/internal/cache"
	"github.com/Joshcode41/todo-app/internal/config"
	"github.com/Joshcode41/todo-app/internal/handlers"
	"github.com/Joshcode41/todo-app/internal/repo"
	"github.com/Joshcode41/todo-app/internal/service"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "github.com/Joshcode41/todo-app/docs"
)

// Setup registers all routes on the given engine. rdb may be nil.
func Setup(r *gin.Engine, cfg config.Config, todoRepo repo.TodoRepo, rdb *redis.Client, logger *log.Logger) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api")

	var todoCache *cache.TodoCache
	if rdb != nil {
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	todoSvc := service.NewTodoService(todoRepo, todoCache, logger)
	todoHandler := handlers.NewTodoHandler(todoSvc, logger)
	registerTodoRoutes(api, todoHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Todo API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/Todo",
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

func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler) {
	api.GET("/Todo", h.List)
	api.GET("/Todo/:id", h.GetByID)
	api.POST("/Todo", h.Create)
	api.PUT("/Todo", h.Update)
	api.DELETE("/Todo", h.Delete)
}
