package main

import (
	"log"
	"time"

	api "replydesk-backend/cmd/api"
	authRepo "replydesk-backend/internal/auth/repository"
	authUsecase "replydesk-backend/internal/auth/usecase"
	emailUsecase "replydesk-backend/internal/email/usecase"
	"replydesk-backend/pkg/ai"
	"replydesk-backend/pkg/config"
	"replydesk-backend/pkg/gmail"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Sessions live in memory only
	sessionRepository := authRepo.NewSessionRepository(cfg.SessionTTL)
	stopSweeper := make(chan struct{})
	defer close(stopSweeper)
	authRepo.StartSweeper(sessionRepository, 10*time.Minute, stopSweeper)

	oauthConfig := gmail.OAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	gmailService := gmail.NewService()
	refresher := authUsecase.NewCredentialRefresher(oauthConfig)

	// Ollama settings can be changed at runtime through the settings API
	api.InitRuntimeConfig(cfg.OllamaBaseURL, cfg.OllamaModel)
	annotator, err := ai.NewAnnotator(ai.Config{
		Provider:         ai.ProviderType(cfg.AIProvider),
		GroqAPIKey:       cfg.GroqAPIKey,
		GroqBaseURL:      cfg.GroqBaseURL,
		GroqModel:        cfg.GroqModel,
		GeminiAPIKey:     cfg.GeminiApiKey,
		GetOllamaBaseURL: api.GetRuntimeOllamaBaseURL,
		GetOllamaModel:   api.GetRuntimeOllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(sessionRepository, oauthConfig, cfg)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(gmailService, annotator, refresher, cfg.AnnotateWorkers)

	handler := api.NewHandler(authUsecaseInstance, emailUsecaseInstance, cfg)

	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
