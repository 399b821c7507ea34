package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the signed tokens used to authenticate
// API requests. Access tokens are short-lived; refresh tokens live longer
// and are only good for minting a new pair.
type JWTService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks an access token's signature, expiry and type,
	// returning its claims. Fails with ErrWrongTokenType if given a
	// refresh token.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for the given user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	// Access tokens are rejected here the same way refresh tokens are
	// rejected by ValidateToken.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the decoded content of a token: the user it was issued
// for, whether it is an access or refresh token, and the registered JWT
// claims.
type Claims struct {
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh"; it keeps a refresh token from
	// being replayed as an access token.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
