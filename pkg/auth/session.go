package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionDuration is how long a freshly issued session stays valid.
const SessionDuration = 7 * 24 * time.Hour

const sessionCookieName = "rolodex_session"
const minSecretLen = 32

// ErrInvalidToken is returned for tokens that fail signature, algorithm or
// claim checks.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidSession is returned by a SessionValidator for tokens whose
// session is unknown, revoked or expired. RequireAuth answers 401 only for
// this error; any other validator error is a server fault.
var ErrInvalidSession = errors.New("invalid session")

// TokenClaims carries the identity bound into a session token. SessionID is
// the jti claim and names the server-side session row.
type TokenClaims struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

// CreateSessionToken signs an HS256 token binding sessionID to userID.
func CreateSessionToken(sessionID, userID string, expiresAt time.Time, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString(secret)
}

// VerifySessionToken checks the signature and expiry of token and returns its claims.
func VerifySessionToken(token string, secret []byte) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &TokenClaims{
		SessionID: claims.ID,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SessionCookieName returns the name of the session cookie.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes converts s into signing key bytes, zero-padded to at least 32 bytes.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}

// TokenFromRequest extracts the session token from the Authorization bearer
// header, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	if cookie, err := r.Cookie(SessionCookieName()); err == nil {
		return cookie.Value
	}
	return ""
}
