package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskforge/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Project *apiHandler.ProjectHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/projects", authMiddleware(handlers.Project.GetProjects))
	r.POST("/api/v1/projects", authMiddleware(handlers.Project.CreateProject))
	r.GET("/api/v1/projects/{id}", authMiddleware(handlers.Project.GetProject))
	r.PUT("/api/v1/projects/{id}", authMiddleware(handlers.Project.UpdateProject))
	r.DELETE("/api/v1/projects/{id}", authMiddleware(handlers.Project.DeleteProject))

	// The static "overdue" segment must be registered before the {id}
	// routes so the router does not treat it as a task id.
	r.GET("/api/v1/tasks/overdue", authMiddleware(handlers.Task.Overdue))
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/{id}/mark_complete", authMiddleware(handlers.Task.MarkComplete))
	r.GET("/api/v1/tasks/{id}/activity", authMiddleware(handlers.Task.Activity))

	return r
}
