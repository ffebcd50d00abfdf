package main

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

type authService struct {
	jwtSecret          []byte
	consultantEmail    string
	consultantPassword string
}

func newAuthService(jwtSecret, consultantEmail, consultantPassword string) *authService {
	return &authService{
		jwtSecret:          []byte(jwtSecret),
		consultantEmail:    consultantEmail,
		consultantPassword: consultantPassword,
	}
}

// claims identifies the logged-in consultant. The consultant id doubles
// as the portfolio owner id.
type claims struct {
	ConsultantID string `json:"consultant_id"`
	jwt.RegisteredClaims
}

// validateCredentials checks the configured consultant login in constant
// time.
func (a *authService) validateCredentials(email, password string) bool {
	if a.consultantEmail == "" || a.consultantPassword == "" {
		return false
	}
	okEmail := constantTimeEquals(email, a.consultantEmail)
	okPassword := constantTimeEquals(password, a.consultantPassword)
	return okEmail && okPassword
}

func constantTimeEquals(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}

// generateToken creates a signed JWT for a consultant.
func (a *authService) generateToken(consultantID string) (string, error) {
	c := &claims{
		ConsultantID: consultantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(a.jwtSecret)
}

// validateToken parses and verifies a bearer token, returning its claims.
func (a *authService) validateToken(tokenString string) (*claims, error) {
	c := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (any, error) {
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return c, nil
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
