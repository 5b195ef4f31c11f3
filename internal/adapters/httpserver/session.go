package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	roleAdmin   = "admin"
	roleCreator = "creator"
)

type sessionClaims struct {
	Role string `json:"role"`
	// Subject carries the admin email or the promo code.
	jwt.RegisteredClaims
}

func (s *Server) issueToken(subject, role string, dur time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "stripy",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(dur)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) verifyToken(tok, wantRole string) (string, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Role != wantRole || claims.Subject == "" {
		return "", errors.New("wrong role")
	}
	return claims.Subject, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, name, tok string, dur time.Duration) {
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name: name, Value: tok, Path: "/",
		MaxAge: int(dur.Seconds()), HttpOnly: true, Secure: secure, SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request, name string) {
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name: name, Value: "", Path: "/",
		MaxAge: -1, HttpOnly: true, Secure: secure, SameSite: http.SameSiteStrictMode,
	})
}

// adminSubject returns the logged-in admin, checking the bearer header first
// and the cookie second.
func (s *Server) adminSubject(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		if sub, err := s.verifyToken(strings.TrimSpace(auth[7:]), roleAdmin); err == nil {
			return sub
		}
	}
	if c, err := r.Cookie("admin_token"); err == nil && c.Value != "" {
		if sub, err := s.verifyToken(c.Value, roleAdmin); err == nil {
			return sub
		}
	}
	return ""
}

func (s *Server) isAdminSession(r *http.Request) bool { return s.adminSubject(r) != "" }

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.isAdminSession(r) {
		return true
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
	return false
}

// creatorCode returns the promo code of the logged-in creator, or "".
func (s *Server) creatorCode(r *http.Request) string {
	if c, err := r.Cookie("creator_token"); err == nil && c.Value != "" {
		if sub, err := s.verifyToken(c.Value, roleCreator); err == nil {
			return sub
		}
	}
	return ""
}
