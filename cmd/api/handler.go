package api

import (
	"log"

	authUsecase "replydesk-backend/internal/auth/usecase"
	emailUsecasePkg "replydesk-backend/internal/email/usecase"
	"replydesk-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase  authUsecase.AuthUsecase
	emailUsecase emailUsecasePkg.EmailUsecase
	config       *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, emailUc emailUsecasePkg.EmailUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:  authUc,
		emailUsecase: emailUc,
		config:       cfg,
	}
}

// Engine builds the gin engine with CORS and all routes registered.
func (h *Handler) Engine() *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware(h.config.FrontendURL))

	SetupRoutes(r, h.authUsecase, h.emailUsecase, h.config)
	return r
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	log.Printf("Server starting on %s", addr)
	return h.Engine().Run(addr)
}

// corsMiddleware allows credentialed requests from the configured frontend
// and the local dev server.
func corsMiddleware(frontendURL string) gin.HandlerFunc {
	allowed := map[string]bool{
		frontendURL:             true,
		"http://localhost:3000": true,
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
