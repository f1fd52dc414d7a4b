package delivery

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	authdto "replydesk-backend/internal/auth/dto"
	"replydesk-backend/internal/auth/usecase"
	"replydesk-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateMaxAge = 10 * 60

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		config:      cfg,
	}
}

// GET /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.New().String()
	h.setCookie(c, authdto.OAuthStateCookieName, state, oauthStateMaxAge)
	c.Redirect(http.StatusFound, h.authUsecase.LoginURL(state))
}

// GET /api/auth/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	state, err := c.Cookie(authdto.OAuthStateCookieName)
	if err != nil || state == "" || state != c.Query("state") {
		h.redirectError(c, "invalid_state")
		return
	}
	h.setCookie(c, authdto.OAuthStateCookieName, "", -1)

	token, err := h.authUsecase.HandleCallback(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Printf("[Auth] Callback failed: %v", err)
		reason := err.Error()
		if i := strings.Index(reason, ":"); i > 0 {
			reason = reason[:i]
		}
		h.redirectError(c, reason)
		return
	}

	h.setCookie(c, authdto.SessionCookieName, token, int(h.config.SessionTTL.Seconds()))
	c.Redirect(http.StatusFound, strings.TrimRight(h.config.FrontendURL, "/")+"/dashboard")
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := sessionToken(c); ok {
		h.authUsecase.Logout(token)
	}
	h.setCookie(c, authdto.SessionCookieName, "", -1)
	c.JSON(http.StatusOK, authdto.LogoutResponse{Message: "Logged out"})
}

// GET /api/gmail/debug/session
func (h *AuthHandler) SessionInfo(c *gin.Context) {
	sess, ok := SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, authdto.SessionInfoResponse{})
		return
	}
	c.JSON(http.StatusOK, authdto.SessionInfoResponse{
		HasUser:         true,
		HasRefreshToken: sess.Credential().RefreshToken != "",
		IndexedEmails:   sess.ReplyIndexSize(),
	})
}

func (h *AuthHandler) redirectError(c *gin.Context, reason string) {
	target := strings.TrimRight(h.config.FrontendURL, "/") + "/?error=" + url.QueryEscape(reason)
	c.Redirect(http.StatusFound, target)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	secure := h.config.SecureCookies()
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}
