package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rburris/roster-api/internal/platform/logger"
)

// JWTProvider authenticates requests carrying a bearer token signed with
// HMAC-SHA256. Identity claims follow the session-token layout: the subject
// is the user ID, with "roles" and "org" as custom claims.
type JWTProvider struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference for validation to handle clock drift
}

// identityClaims defines the structure of JWT claims we use
type identityClaims struct {
	Roles []string    `json:"roles"`
	Org   *OrgContext `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// Ensure JWTProvider implements ContextProvider interface.
var _ ContextProvider = (*JWTProvider)(nil)

// NewJWTProvider creates a JWT-backed identity provider using HMAC-SHA signing.
func NewJWTProvider(secret string) (*JWTProvider, error) {
	// Validate that the secret meets minimum length requirements
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &JWTProvider{
		signingKey:    []byte(secret),
		tokenLifetime: time.Hour,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute, // Allow 2 minutes of clock skew to handle minor time drifts
	}, nil
}

// Identify implements ContextProvider. It validates the bearer token and
// builds the caller identity from its claims.
func (p *JWTProvider) Identify(r *http.Request) (*UserContext, error) {
	log := logger.FromContext(r.Context())

	tokenString, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	now := p.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(p.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&identityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return p.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err)
		default:
			log.Debug("token validation failed: other validation error",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	log.Debug("token validated successfully",
		"user_id", claims.Subject,
		"token_id", claims.ID)

	return &UserContext{
		ID:    claims.Subject,
		Roles: claims.Roles,
		Org:   claims.Org,
	}, nil
}

// IssueToken creates a signed token carrying the given identity. Primarily
// for service-to-service callers and tests; interactive sessions get their
// tokens from the identity provider.
func (p *JWTProvider) IssueToken(subject string, roles []string, org *OrgContext) (string, error) {
	now := p.timeFunc()

	claims := identityClaims{
		Roles: roles,
		Org:   org,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.tokenLifetime)),
			ID:        uuid.New().String(), // Unique token ID
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrInvalidToken
	}
	return header[len(prefix):], nil
}
