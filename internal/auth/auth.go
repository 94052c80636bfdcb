// Package auth проверяет access-токены внешнего провайдера идентификации
// и извлекает из них id зрителя (claim sub).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-videohub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken - подпись, алгоритм, issuer/audience или subject не прошли проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired - срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// leeway - допустимый рассинхрон часов с провайдером.
const leeway = 5 * time.Second

// Verifier проверяет HS256-токены общим секретом.
type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

// NewVerifier создаёт Verifier. Пустые Issuer/Audience не проверяются.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Verifier{secret: []byte(cfg.JWTSecret), opts: opts}
}

// Verify проверяет токен и возвращает id зрителя.
func (v *Verifier) Verify(token string) (uuid.UUID, error) {
	const op = "auth.Verify"

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}

		return v.secret, nil
	}, v.opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s: subject: %w", op, ErrInvalidToken)
	}

	return uid, nil
}
