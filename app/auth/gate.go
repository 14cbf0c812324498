package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for any token that fails verification.
var ErrUnauthorized = errors.New("login required")

// LoginRequired is the payload sent back to unauthorized callers.
const LoginRequired = "Login required"

// Verifier checks a caller-supplied token.
type Verifier interface {
	Verify(token string) error
}

// Gate verifies HMAC-signed JWTs against a shared secret.
type Gate struct {
	secret []byte
	parser *jwt.Parser
}

// NewGate creates a Gate for the given secret. A gate with an empty secret
// rejects every token.
func NewGate(secret string) *Gate {
	return &Gate{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})),
	}
}

// Verify checks the signature and the time-based claims of token.
// Every failure wraps ErrUnauthorized.
func (g *Gate) Verify(token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrUnauthorized)
	}
	if len(g.secret) == 0 {
		return fmt.Errorf("%w: no secret configured", ErrUnauthorized)
	}

	parsed, err := g.parser.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return fmt.Errorf("%w: token signature invalid", ErrUnauthorized)
	}
	return nil
}

type contextKey string

const tokenKey contextKey = "bearer_token"

// WithToken returns a copy of ctx carrying the caller's token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the token stored by WithToken, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
