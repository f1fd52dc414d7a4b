package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	authdomain "replydesk-backend/internal/auth/domain"
	authdto "replydesk-backend/internal/auth/dto"
	"replydesk-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type fakeAuthUsecase struct {
	sess        *authdomain.Session
	callbackErr error
	loggedOut   []string
}

func (f *fakeAuthUsecase) LoginURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeAuthUsecase) HandleCallback(ctx context.Context, code string) (string, error) {
	if f.callbackErr != nil {
		return "", f.callbackErr
	}
	return "signed-" + code, nil
}

func (f *fakeAuthUsecase) ValidateToken(token string) (*authdomain.Session, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return f.sess, nil
}

func (f *fakeAuthUsecase) Logout(token string) { f.loggedOut = append(f.loggedOut, token) }

func newAuthRouter(uc *fakeAuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(uc, &config.Config{FrontendURL: "http://localhost:3000/", SessionTTL: time.Hour})

	r := gin.New()
	r.GET("/api/auth/login", h.Login)
	r.GET("/api/auth/callback", h.Callback)
	r.POST("/api/auth/logout", h.Logout)
	g := r.Group("/api/gmail", AuthMiddleware(uc))
	g.GET("/debug/session", h.SessionInfo)
	return r
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsStateCookie(t *testing.T) {
	r := newAuthRouter(&fakeAuthUsecase{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	state := cookieNamed(w, authdto.OAuthStateCookieName)
	if state == nil || state.Value == "" || !state.HttpOnly {
		t.Fatalf("state cookie = %+v", state)
	}
	loc, _ := url.Parse(w.Header().Get("Location"))
	if loc.Query().Get("state") != state.Value {
		t.Errorf("redirect state %q != cookie %q", loc.Query().Get("state"), state.Value)
	}
}

func TestCallback(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		query      string
		err        error
		location   string
		wantCookie bool
	}{
		{"ok", "st", "state=st&code=abc", nil, "http://localhost:3000/dashboard", true},
		{"state mismatch", "st", "state=other&code=abc", nil, "http://localhost:3000/?error=invalid_state", false},
		{"no state cookie", "", "state=st&code=abc", nil, "http://localhost:3000/?error=invalid_state", false},
		{"exchange failure", "st", "state=st&code=abc", errors.New("token_failed: boom"), "http://localhost:3000/?error=token_failed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(&fakeAuthUsecase{callbackErr: tt.err})
			req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: authdto.OAuthStateCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
			sess := cookieNamed(w, authdto.SessionCookieName)
			if tt.wantCookie && (sess == nil || sess.Value != "signed-abc") {
				t.Errorf("session cookie = %+v", sess)
			}
			if !tt.wantCookie && sess != nil {
				t.Errorf("unexpected session cookie %+v", sess)
			}
		})
	}
}

func TestMiddlewareAcceptsCookieOrBearer(t *testing.T) {
	sess := authdomain.NewSession("s1", authdomain.Credential{AccessToken: "a", RefreshToken: "r"}, time.Now(), time.Hour)
	r := newAuthRouter(&fakeAuthUsecase{sess: sess})

	bearer := httptest.NewRequest(http.MethodGet, "/api/gmail/debug/session", nil)
	bearer.Header.Set("Authorization", "Bearer good")

	cookie := httptest.NewRequest(http.MethodGet, "/api/gmail/debug/session", nil)
	cookie.AddCookie(&http.Cookie{Name: authdto.SessionCookieName, Value: "good"})

	for name, req := range map[string]*http.Request{"bearer": bearer, "cookie": cookie} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"has_refresh_token":true`) {
			t.Errorf("%s: %d %s", name, w.Code, w.Body.String())
		}
	}

	malformed := httptest.NewRequest(http.MethodGet, "/api/gmail/debug/session", nil)
	malformed.Header.Set("Authorization", "Token good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, malformed)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("malformed header: status = %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	uc := &fakeAuthUsecase{}
	r := newAuthRouter(uc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: authdto.SessionCookieName, Value: "tok"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if len(uc.loggedOut) != 1 || uc.loggedOut[0] != "tok" {
		t.Errorf("logged out = %v", uc.loggedOut)
	}
	if c := cookieNamed(w, authdto.SessionCookieName); c == nil || c.MaxAge >= 0 {
		t.Errorf("session cookie not cleared: %+v", c)
	}
}
