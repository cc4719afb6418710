package router

import (
	"time"

	"github.com/boardhub-dev/boardhub/internal/handlers"
	"github.com/boardhub-dev/boardhub/internal/middleware"
	"github.com/boardhub-dev/boardhub/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Membership management
			projects.GET("/:project_id/members", handlers.ListProjectMembers)
			projects.POST("/:project_id/members", handlers.AddProjectMember)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveProjectMember)

			// Lists scoped to a project
			projects.POST("/:project_id/lists", handlers.CreateList)
			projects.GET("/:project_id/lists", handlers.ListBoardLists)
		}

		lists := api.Group("/lists", middleware.AuthMiddleware())
		{
			lists.PUT("/:list_id", handlers.UpdateList)
			lists.DELETE("/:list_id", handlers.DeleteList)
			lists.POST("/:list_id/cards", handlers.CreateCard)
			lists.GET("/:list_id/cards", handlers.ListCards)
		}

		cards := api.Group("/cards", middleware.AuthMiddleware())
		{
			cards.PUT("/:card_id", handlers.UpdateCard)
			cards.POST("/:card_id/move", handlers.MoveCard)
			cards.DELETE("/:card_id", handlers.DeleteCard)
		}
	}

	return r
}
