package api

import (
	"net/http"

	"replydesk-backend/internal/auth/delivery"
	authUsecase "replydesk-backend/internal/auth/usecase"
	emailDelivery "replydesk-backend/internal/email/delivery"
	emailUsecase "replydesk-backend/internal/email/usecase"
	"replydesk-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, emailUsecase emailUsecase.EmailUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUsecase, cfg)
	emailHandler := emailDelivery.NewEmailHandler(emailUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/login", authHandler.Login)
			auth.GET("/callback", authHandler.Callback)
			auth.POST("/logout", authHandler.Logout)
		}

		// Gmail routes (protected)
		gmail := api.Group("/gmail")
		gmail.Use(delivery.AuthMiddleware(authUsecase))
		{
			gmail.GET("/profile", emailHandler.GetProfile)
			gmail.GET("/messages", emailHandler.ListMessages)
			gmail.GET("/message/:id", emailHandler.GetMessage)
			gmail.GET("/message/:id/full", emailHandler.GetMessageFull)
			gmail.DELETE("/message/:id", emailHandler.DeleteMessage)
			gmail.POST("/send", emailHandler.SendMessage)

			gmail.GET("/last", emailHandler.ListRecent)
			gmail.GET("/last_with_summaries", emailHandler.ListRecentWithSummaries)
			gmail.GET("/last_with_replies", emailHandler.ListRecentWithReplies)
			gmail.POST("/send_reply", emailHandler.SendReply)

			gmail.GET("/debug/session", authHandler.SessionInfo)
		}

		// Settings routes (public) - Runtime configuration
		settings := api.Group("/settings")
		{
			settings.GET("/ollama", GetOllamaSettings)
			settings.PUT("/ollama", UpdateOllamaSettings)
			settings.POST("/ollama/test", TestOllamaConnection)
		}
	}
}
