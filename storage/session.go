package storage

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

// Session is a per-browser Storage backed by a gorilla session. Each Set or
// Remove writes the session cookie to the response, so callers must finish
// storage writes before writing the response body.
type Session struct {
	session *sessions.Session
	w       http.ResponseWriter
	r       *http.Request
}

// NewSession loads the named session for r. A cookie that fails to decode
// yields a fresh, empty session rather than an error.
func NewSession(store sessions.Store, name string, w http.ResponseWriter, r *http.Request) *Session {
	// CookieStore returns a usable new session alongside a decode error.
	s, _ := store.Get(r, name)
	if s == nil {
		s = sessions.NewSession(store, name)
		s.Options = &sessions.Options{Path: "/", HttpOnly: true}
		s.IsNew = true
	}
	return &Session{session: s, w: w, r: r}
}

func (s *Session) Get(key string) (string, bool, error) {
	v, ok := s.session.Values[key].(string)
	return v, ok, nil
}

func (s *Session) Set(key, value string) error {
	s.session.Values[key] = value
	return s.save()
}

func (s *Session) Remove(key string) error {
	if _, ok := s.session.Values[key]; !ok {
		return nil
	}
	delete(s.session.Values, key)
	return s.save()
}

// save replaces any cookie of ours already queued on the response, so a
// handler that writes several keys sends one current cookie.
func (s *Session) save() error {
	h := s.w.Header()
	prefix := s.session.Name() + "="
	queued := h["Set-Cookie"]
	kept := queued[:0]
	for _, c := range queued {
		if !strings.HasPrefix(c, prefix) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		h.Del("Set-Cookie")
	} else {
		h["Set-Cookie"] = kept
	}
	return s.session.Save(s.r, s.w)
}
