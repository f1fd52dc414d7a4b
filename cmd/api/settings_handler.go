package api

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"replydesk-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// OllamaSettings is the part of the annotator configuration that can be
// changed while the server runs. The Ollama provider reads it on every call.
type OllamaSettings struct {
	BaseURL string `json:"ollama_base_url"`
	Model   string `json:"ollama_model,omitempty"`
}

var (
	ollamaSettings   OllamaSettings
	ollamaSettingsMu sync.RWMutex
)

// InitRuntimeConfig seeds the runtime settings from the loaded config.
func InitRuntimeConfig(ollamaBaseURL, ollamaModel string) {
	ollamaSettingsMu.Lock()
	defer ollamaSettingsMu.Unlock()
	ollamaSettings = OllamaSettings{
		BaseURL: normalizeBaseURL(ollamaBaseURL),
		Model:   ollamaModel,
	}
}

func GetRuntimeOllamaBaseURL() string {
	ollamaSettingsMu.RLock()
	defer ollamaSettingsMu.RUnlock()
	return ollamaSettings.BaseURL
}

func GetRuntimeOllamaModel() string {
	ollamaSettingsMu.RLock()
	defer ollamaSettingsMu.RUnlock()
	return ollamaSettings.Model
}

func currentOllamaSettings() OllamaSettings {
	ollamaSettingsMu.RLock()
	defer ollamaSettingsMu.RUnlock()
	return ollamaSettings
}

type updateOllamaSettingsRequest struct {
	BaseURL string `json:"ollama_base_url" binding:"required"`
	Model   string `json:"ollama_model,omitempty"`
}

// validateBaseURL accepts absolute http(s) URLs only.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid ollama_base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid ollama_base_url: %q is not an http(s) URL", raw)
	}
	return nil
}

func normalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// GET /api/settings/ollama
func GetOllamaSettings(c *gin.Context) {
	c.JSON(http.StatusOK, currentOllamaSettings())
}

// PUT /api/settings/ollama
func UpdateOllamaSettings(c *gin.Context) {
	var req updateOllamaSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baseURL := normalizeBaseURL(req.BaseURL)
	if err := validateBaseURL(baseURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ollamaSettingsMu.Lock()
	ollamaSettings.BaseURL = baseURL
	if req.Model != "" {
		ollamaSettings.Model = req.Model
	}
	updated := ollamaSettings
	ollamaSettingsMu.Unlock()

	log.Printf("[Settings] Ollama now at %s (model %q)", updated.BaseURL, updated.Model)
	c.JSON(http.StatusOK, updated)
}

// POST /api/settings/ollama/test
// An empty body probes the currently configured server.
func TestOllamaConnection(c *gin.Context) {
	var req struct {
		BaseURL string `json:"ollama_base_url"`
	}
	_ = c.ShouldBindJSON(&req)

	baseURL := normalizeBaseURL(req.BaseURL)
	if baseURL == "" {
		baseURL = GetRuntimeOllamaBaseURL()
	}
	if err := validateBaseURL(baseURL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"connected": false, "error": err.Error()})
		return
	}

	statusCode, err := ai.Ping(c.Request.Context(), baseURL)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"connected": false, "error": err.Error()})
		return
	}
	if statusCode != http.StatusOK {
		c.JSON(http.StatusServiceUnavailable, gin.H{"connected": false, "status_code": statusCode})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": true, "ollama_base_url": baseURL})
}
