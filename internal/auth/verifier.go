// Package auth gates protected routes behind bearer-token verification
// against the identity provider's published key set.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Only asymmetric signing schemes are accepted. Symmetric and "none"
// algorithms would let anyone who can read the key set mint tokens.
var allowedMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384"}

// Claims are the token claims the service cares about. Email and name feed
// the display-name default at lazy profile creation.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Identity is the verified caller attached to each authenticated request.
// Subject is the owner identifier used as the tenancy boundary.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// DefaultDisplayName is the identity-derived display name assigned when a
// profile is created lazily.
func (id *Identity) DefaultDisplayName() string {
	if id.Name != "" {
		return id.Name
	}
	return id.Email
}

// Verifier validates bearer tokens. Signing keys are resolved by key id from
// the issuer's JWKS endpoint and cached between requests.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
}

// NewVerifier fetches the issuer's key set and returns a ready verifier.
// The key set refreshes itself in the background for the lifetime of ctx.
func NewVerifier(ctx context.Context, jwksURL, issuer, audience string) (*Verifier, error) {
	kf, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return &Verifier{keyfunc: kf.Keyfunc, issuer: issuer, audience: audience}, nil
}

// NewVerifierWithKeyfunc builds a verifier around an explicit key resolver.
func NewVerifierWithKeyfunc(kf jwt.Keyfunc, issuer, audience string) *Verifier {
	return &Verifier{keyfunc: kf, issuer: issuer, audience: audience}
}

// Verify checks signature, algorithm, issuer, audience and expiry, returning
// the caller's identity on success.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc,
		jwt.WithValidMethods(allowedMethods),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
