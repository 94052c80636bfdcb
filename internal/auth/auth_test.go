package auth

import (
	"testing"
	"time"

	"github.com/pribylovaa/go-videohub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "unit-test-secret",
		Issuer:    "idp",
		Audience:  "videohub",
	}
}

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(sub string, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": sub,
		"iss": "idp",
		"aud": []string{"videohub"},
		"iat": now.Unix(),
		"exp": now.Add(15 * time.Minute).Unix(),
	}
}

func TestVerify_OK(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testAuthCfg())
	uid := uuid.New()

	got, err := v.Verify(sign(t, jwt.SigningMethodHS256, "unit-test-secret", validClaims(uid.String(), time.Now())))
	require.NoError(t, err)
	require.Equal(t, uid, got)
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testAuthCfg())
	now := time.Now()
	uid := uuid.NewString()

	withClaim := func(k string, val any) jwt.MapClaims {
		c := validClaims(uid, now)
		c[k] = val
		return c
	}

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "wrong alg", token: sign(t, jwt.SigningMethodHS512, "unit-test-secret", validClaims(uid, now)), want: ErrInvalidToken},
		{name: "wrong secret", token: sign(t, jwt.SigningMethodHS256, "other", validClaims(uid, now)), want: ErrInvalidToken},
		{name: "wrong issuer", token: sign(t, jwt.SigningMethodHS256, "unit-test-secret", withClaim("iss", "evil")), want: ErrInvalidToken},
		{name: "wrong audience", token: sign(t, jwt.SigningMethodHS256, "unit-test-secret", withClaim("aud", []string{"other"})), want: ErrInvalidToken},
		{name: "subject not uuid", token: sign(t, jwt.SigningMethodHS256, "unit-test-secret", withClaim("sub", "alice")), want: ErrInvalidToken},
		{name: "expired", token: sign(t, jwt.SigningMethodHS256, "unit-test-secret", withClaim("exp", now.Add(-time.Hour).Unix())), want: ErrTokenExpired},
		{name: "garbage", token: "not.a.jwt", want: ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := v.Verify(tt.token)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerify_OptionalIssuerAudience(t *testing.T) {
	t.Parallel()

	v := NewVerifier(config.AuthConfig{JWTSecret: "s"})
	uid := uuid.New()

	claims := jwt.MapClaims{"sub": uid.String(), "exp": time.Now().Add(time.Minute).Unix()}
	got, err := v.Verify(sign(t, jwt.SigningMethodHS256, "s", claims))
	require.NoError(t, err)
	require.Equal(t, uid, got)
}
