package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieOptions regroupe les réglages du cookie de session
type CookieOptions struct {
	MaxAge int
	Secure bool
}

// NewCookieStore stocke la session dans un cookie signé (et chiffré si encKey est fourni)
func NewCookieStore(secret, encKey []byte, opts CookieOptions) *sessions.CookieStore {
	var store *sessions.CookieStore
	if len(encKey) > 0 {
		store = sessions.NewCookieStore(secret, encKey)
	} else {
		store = sessions.NewCookieStore(secret)
	}
	store.MaxAge(opts.MaxAge)
	store.Options = DefaultOptions(opts)
	return store
}

func DefaultOptions(opts CookieOptions) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
