// Package auth gates the admin API behind the shared token configured in the
// environment. The token travels either in the x-admin-token header or in the
// admin_token cookie set by Login.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/evasion-voyages/voyages-manager/internal/apisrv/httpx"
)

const (
	// TokenHeader is checked first on every admin request.
	TokenHeader = "x-admin-token"
	// TokenCookie is the fallback for browser sessions.
	TokenCookie = "admin_token"

	cookieTTL = 7 * 24 * time.Hour
)

type Config struct {
	AdminToken string `mapstructure:"admin_token"`
}

// Server verifies admin credentials.
type Server struct {
	c *Config
}

func New(c *Config) *Server {
	return &Server{c: c}
}

// Verify reports whether the request carries the admin token. An empty
// configured token never matches: with no token set the admin area stays
// closed rather than open.
func (s *Server) Verify(r *http.Request) bool {
	expected := s.c.AdminToken
	if expected == "" {
		return false
	}
	if tokenEqual(r.Header.Get(TokenHeader), expected) {
		return true
	}
	if c, err := r.Cookie(TokenCookie); err == nil && tokenEqual(c.Value, expected) {
		return true
	}
	return false
}

func tokenEqual(got, expected string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

// WithAuth rejects any request lacking the admin token.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Verify(r) {
			slog.Default().WarnContext(r.Context(), "unauthorized admin request",
				slog.String("path", r.URL.Path),
			)
			httpx.Error(w, http.StatusUnauthorized, "Non autorisé")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Token string `json:"token"`
}

// Login exchanges the shared token for a session cookie. The token is
// accepted as JSON or as a form field.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var token string
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req loginRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.FromError(w, r, err)
			return
		}
		token = req.Token
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Le corps de la requête est invalide")
			return
		}
		token = r.PostFormValue("token")
	}

	if s.c.AdminToken == "" || !tokenEqual(token, s.c.AdminToken) {
		httpx.Error(w, http.StatusUnauthorized, "Jeton invalide")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    s.c.AdminToken,
		Path:     "/",
		MaxAge:   int(cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.Message(w, http.StatusOK, "Connexion réussie")
}

// Logout clears the session cookie.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.Message(w, http.StatusOK, "Déconnexion réussie")
}
