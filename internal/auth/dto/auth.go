package dto

// SessionCookieName holds the signed session token set after login.
const SessionCookieName = "replydesk_session"

// OAuthStateCookieName holds the state value sent to Google on login.
const OAuthStateCookieName = "replydesk_oauth_state"

type LogoutResponse struct {
	Message string `json:"message"`
}

type SessionInfoResponse struct {
	HasUser         bool `json:"has_user"`
	HasRefreshToken bool `json:"has_refresh_token"`
	IndexedEmails   int  `json:"indexed_emails"`
}
