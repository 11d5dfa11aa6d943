package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/skillup/backend/internal/models"
)

// SessionCookieName is the cookie carrying the signed session ID
const SessionCookieName = "skillup.sid"

type contextKey string

const sessionKey contextKey = "session"

// SessionResolver is the interface that wraps the session lookup used by the authentication gate.
type SessionResolver interface {
	// Method Resolve verifies a session cookie value and returns the live session behind it.
	//
	// "cookieValue" parameter is the raw value of the session cookie.
	//
	// If the cookie is forged, the session does not exist or it has expired, the error will be returned together with "nil" value.
	Resolve(ctx context.Context, cookieValue string) (*models.Session, error)
}

// RequireSession lets requests with a valid session through and redirects everything else to redirectTo.
// The cookie is re-sent on every pass so the browser keeps it as long as the server side session slides.
func RequireSession(resolver SessionResolver, redirectTo string, cookieSecure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, redirectTo, http.StatusFound)
				return
			}

			session, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				http.Redirect(w, r, redirectTo, http.StatusFound)
				return
			}
			SetSessionCookie(w, cookie.Value, time.Until(session.ExpiresAt), cookieSecure)

			ctx := WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionCookie writes the session cookie with a lifetime of maxAge
func SetSessionCookie(w http.ResponseWriter, value string, maxAge time.Duration, secure bool) {
	seconds := int(maxAge.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   seconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the browser to drop the session cookie
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WithSession returns a copy of ctx carrying the session
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession retrieves the session from context
func GetSession(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok && session != nil
}
