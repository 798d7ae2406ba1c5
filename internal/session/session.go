// Package session identifies the browsing session a request belongs to.
// The id comes from the X-Session-ID header or the sid cookie; requests
// carrying neither get a fresh one, returned in both places.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "sid"
	HeaderName = "X-Session-ID"

	cookieMaxAge = 30 * 24 * time.Hour
	maxIDLength  = 128
)

type ctxKey struct{}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := fromRequest(r)
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(HeaderName, id)
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

func fromRequest(r *http.Request) string {
	if id := r.Header.Get(HeaderName); valid(id) {
		return id
	}
	if c, err := r.Cookie(CookieName); err == nil && valid(c.Value) {
		return c.Value
	}
	return ""
}

func valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, r := range id {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the session id stored by Middleware, or "" outside a session.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
