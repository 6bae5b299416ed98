package utils // package utils provides helper functions for session token handling

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// SessionToken represents a signed JWT bound to one browsing session
// and one show.  The Token field contains the serialized JWT string;
// Exp records when the token (and with it the session's cart) lapses.
// Clients send the token in the Authorization header on every cart and
// checkout call.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// SessionClaims is the decoded content of a session token: which
// session's cart the bearer may operate on and which show that cart
// was constructed for.
type SessionClaims struct {
	SessionID string
	ShowID    string
}

// ErrInvalidSessionToken is returned by ParseSessionToken for tokens
// that are malformed, expired, signed with a different secret, or
// missing the expected claims.
var ErrInvalidSessionToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for a browsing
// session.  The claims carry the session id as the subject, the show
// id, the expiration and the issue time.
func NewSessionToken(secret, sessionID, showID string, ttl time.Duration) (SessionToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  sessionID,
		"show": showID,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a raw token string against the signing
// secret and extracts its session claims.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC tokens issued by this service are acceptable.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	sid, _ := claims["sub"].(string)
	show, _ := claims["show"].(string)
	if sid == "" || show == "" {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	return SessionClaims{SessionID: sid, ShowID: show}, nil
}
