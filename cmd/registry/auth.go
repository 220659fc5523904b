package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Simplici0/tpp-registry/internal/users"
)

const sessionCookieName = "tpp_session"

type contextKey int

const (
	userKey contextKey = iota
	domainKey
)

type authService struct {
	users         *users.Repository
	sessionSecret []byte
	ttl           time.Duration
	now           func() time.Time
}

func newAuthService(accounts *users.Repository, sessionSecret string, ttl time.Duration) *authService {
	return &authService{
		users:         accounts,
		sessionSecret: []byte(sessionSecret),
		ttl:           ttl,
		now:           time.Now,
	}
}

func (a *authService) sign(payload string) []byte {
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	return mac.Sum(nil)
}

// createSessionValue encodes login and the expiry as "payload.signature",
// both parts base64url.
func (a *authService) createSessionValue(login string) string {
	expires := a.now().Add(a.ttl).Unix()
	payload := base64.RawURLEncoding.EncodeToString([]byte(login + "|" + strconv.FormatInt(expires, 10)))
	return payload + "." + base64.RawURLEncoding.EncodeToString(a.sign(payload))
}

func (a *authService) verifySessionValue(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	provided, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil || !hmac.Equal(provided, a.sign(payload)) {
		return "", false
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	sep := strings.LastIndexByte(string(raw), '|')
	if sep <= 0 {
		return "", false
	}
	expires, err := strconv.ParseInt(string(raw[sep+1:]), 10, 64)
	if err != nil || a.now().Unix() >= expires {
		return "", false
	}
	return string(raw[:sep]), true
}

// sessionUser resolves the account of the request's session cookie. Removed
// accounts lose their session.
func (a *authService) sessionUser(r *http.Request) (users.User, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return users.User{}, false
	}
	login, ok := a.verifySessionValue(cookie.Value)
	if !ok {
		return users.User{}, false
	}
	u, err := a.users.Get(r.Context(), login)
	if err != nil {
		return users.User{}, false
	}
	return u, true
}

func (a *authService) setSessionCookie(w http.ResponseWriter, login string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue(login),
		Path:     "/",
		MaxAge:   int(a.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func withUser(ctx context.Context, u users.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func currentUser(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(userKey).(users.User)
	return u, ok
}
