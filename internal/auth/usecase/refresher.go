package usecase

import (
	"context"
	"log"

	authdomain "replydesk-backend/internal/auth/domain"

	"golang.org/x/oauth2"
)

// CredentialRefresher keeps a session's access token usable.
type CredentialRefresher struct {
	oauthConfig *oauth2.Config
}

func NewCredentialRefresher(oauthConfig *oauth2.Config) *CredentialRefresher {
	return &CredentialRefresher{oauthConfig: oauthConfig}
}

// EnsureValid returns the session's access token, refreshing it first when
// oauth2 considers it expired and a refresh token is held. A failed or
// impossible refresh leaves the old token in place; the next mailbox call
// reports the failure.
func (r *CredentialRefresher) EnsureValid(ctx context.Context, sess *authdomain.Session) string {
	cred := sess.Credential()

	current := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       cred.Expiry,
	}
	if current.Valid() || cred.RefreshToken == "" {
		return cred.AccessToken
	}

	// A token source seeded with only the refresh token always exchanges it.
	src := r.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	fresh, err := src.Token()
	if err != nil {
		log.Printf("[Auth] Token refresh failed for session %s: %v", sess.ID, err)
		return cred.AccessToken
	}

	sess.UpdateAccessToken(fresh.AccessToken, fresh.Expiry)
	log.Printf("[Auth] Refreshed access token for session %s", sess.ID)
	return fresh.AccessToken
}
