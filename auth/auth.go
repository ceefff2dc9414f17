package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"bizsite/crypto"
)

const SessionName = "bizsite-admin"

// NewCookieStore builds the gorilla cookie store that carries each browser's
// session flag. Two 32-byte keys are derived from the secret: one signs,
// one encrypts.
func NewCookieStore(secret string, secure bool, ttl time.Duration) *sessions.CookieStore {
	store := sessions.NewCookieStore(
		crypto.ServerKey(secret, "auth"),
		crypto.ServerKey(secret, "encryption"),
	)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
