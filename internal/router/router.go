package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/taskboard/taskboard/docs"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/middleware"
	"github.com/taskboard/taskboard/internal/modules/handler"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"github.com/taskboard/taskboard/internal/pkg/tokens"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	Issuer          *tokens.Issuer
	Revoker         tokens.Revoker
	Users           middleware.UserLoader
	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	ProjectHandler  *handler.ProjectHandler
	TaskHandler     *handler.TaskHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))
	// cookies are sent cross-origin, so origins must be listed explicitly
	if len(d.Config.App.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.Config.App.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Trace-Id"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := middleware.UserAuth(d.Issuer, d.Revoker, d.Users, d.Log)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
			auth.POST("/refresh", d.AuthHandler.Refresh)

			auth.POST("/logout", authed, d.AuthHandler.Logout)
			auth.GET("/user-info", authed, d.AuthHandler.GetUserInfo)
			auth.PATCH("/user-info", authed, d.AuthHandler.UpdateUserInfo)
		}

		category := v1.Group("/categories", authed)
		{
			category.GET("", d.CategoryHandler.ListCategories)
			category.POST("", d.CategoryHandler.CreateCategory)
			category.GET("/:id", d.CategoryHandler.GetCategory)
			category.PATCH("/:id", d.CategoryHandler.UpdateCategory)
			category.DELETE("/:id", d.CategoryHandler.DeleteCategory)

			category.GET("/:id/projects", d.CategoryHandler.ListCategoryProjects)
		}

		project := v1.Group("/projects", authed)
		{
			project.GET("/dashboard", d.ProjectHandler.Dashboard)

			project.GET("", d.ProjectHandler.ListProjects)
			project.POST("", d.ProjectHandler.CreateProject)
			project.GET("/:id", d.ProjectHandler.GetProject)
			project.PATCH("/:id", d.ProjectHandler.UpdateProject)
			project.DELETE("/:id", d.ProjectHandler.DeleteProject)

			project.GET("/:id/tasks", d.ProjectHandler.ListProjectTasks)
		}

		task := v1.Group("/tasks", authed)
		{
			task.GET("/overdue", d.TaskHandler.OverdueTasks)
			task.GET("/due-today", d.TaskHandler.DueTodayTasks)

			task.GET("", d.TaskHandler.ListTasks)
			task.POST("", d.TaskHandler.CreateTask)
			task.GET("/:id", d.TaskHandler.GetTask)
			task.PATCH("/:id", d.TaskHandler.UpdateTask)
			task.DELETE("/:id", d.TaskHandler.DeleteTask)
		}
	}
	return r
}
