package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/auth"
)

const (
	testIssuer   = "https://issuer.test"
	testAudience = "https://api.taskdeck.test"
	testKeyID    = "test-key-1"
)

func newSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims auth.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims(subject string) auth.Claims {
	return auth.Claims{
		Email: "ada@example.com",
		Name:  "Ada Lovelace",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func staticVerifier(key *rsa.PrivateKey) *auth.Verifier {
	kf := func(token *jwt.Token) (any, error) { return &key.PublicKey, nil }
	return auth.NewVerifierWithKeyfunc(kf, testIssuer, testAudience)
}

// jwksHandler serves the public half of key as a JWKS document.
func jwksHandler(key *rsa.PrivateKey) http.HandlerFunc {
	pub := key.Public().(*rsa.PublicKey)
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"use": "sig",
			"alg": "RS256",
			"kid": testKeyID,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   "AQAB",
		}},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

func TestVerifier_JWKSRoundTrip(t *testing.T) {
	key := newSigningKey(t)
	srv := httptest.NewServer(jwksHandler(key))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v, err := auth.NewVerifier(ctx, srv.URL, testIssuer, testAudience)
	require.NoError(t, err)

	identity, err := v.Verify(signToken(t, key, validClaims("auth0|user-1")))
	require.NoError(t, err)
	assert.Equal(t, "auth0|user-1", identity.Subject)
	assert.Equal(t, "ada@example.com", identity.Email)
}

func TestVerifier_Rejections(t *testing.T) {
	key := newSigningKey(t)
	v := staticVerifier(key)

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims("u1")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(signToken(t, key, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims("u1")
		claims.Audience = jwt.ClaimStrings{"https://other.test"}
		_, err := v.Verify(signToken(t, key, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims("u1")
		claims.Issuer = "https://evil.test"
		_, err := v.Verify(signToken(t, key, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims("")
		_, err := v.Verify(signToken(t, key, claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("symmetric algorithm refused", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims("u1"))
		signed, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)
		_, err = v.Verify(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("signed by another key", func(t *testing.T) {
		other := newSigningKey(t)
		_, err := v.Verify(signToken(t, other, validClaims("u1")))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	key := newSigningKey(t)
	v := staticVerifier(key)
	e := echo.New()

	next := func(c echo.Context) error {
		identity := auth.IdentityFrom(c)
		return c.String(http.StatusOK, identity.Subject)
	}
	handler := auth.Middleware(v)(next)

	call := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		if authorization != "" {
			req.Header.Set(echo.HeaderAuthorization, authorization)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	t.Run("valid bearer token", func(t *testing.T) {
		rec := call("Bearer " + signToken(t, key, validClaims("auth0|user-9")))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "auth0|user-9", rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("not a bearer scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Basic dXNlcjpwYXNz").Code)
	})

	t.Run("empty token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer ").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer not.a.token").Code)
	})
}
