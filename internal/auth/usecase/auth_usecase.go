package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "replydesk-backend/internal/auth/domain"
	"replydesk-backend/internal/auth/repository"
	"replydesk-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// AuthUsecase covers the login round trip and session token checks.
type AuthUsecase interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (token string, err error)
	ValidateToken(token string) (*authdomain.Session, error)
	Logout(token string)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	sessionRepo repository.SessionRepository
	oauthConfig *oauth2.Config
	config      *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(sessionRepo repository.SessionRepository, oauthConfig *oauth2.Config, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		sessionRepo: sessionRepo,
		oauthConfig: oauthConfig,
		config:      cfg,
	}
}

// LoginURL asks for offline access with a forced consent screen so Google
// hands out a refresh token every time.
func (u *authUsecase) LoginURL(state string) string {
	return u.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

func (u *authUsecase) HandleCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", errors.New("missing_code")
	}

	tok, err := u.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("token_failed: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("token_failed")
	}

	sess := u.sessionRepo.Create(authdomain.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	})

	return u.generateSessionToken(sess)
}

func (u *authUsecase) generateSessionToken(sess *authdomain.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sess.ID,
		"exp":        sess.ExpiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.SessionSecret))
}

func (u *authUsecase) parseSessionID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("invalid token claims")
	}
	return sessionID, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Session, error) {
	sessionID, err := u.parseSessionID(tokenString)
	if err != nil {
		return nil, err
	}

	sess := u.sessionRepo.FindByID(sessionID)
	if sess == nil {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

// Logout drops the session behind token. Unknown tokens are ignored.
func (u *authUsecase) Logout(tokenString string) {
	sessionID, err := u.parseSessionID(tokenString)
	if err != nil {
		return
	}
	u.sessionRepo.Delete(sessionID)
}
