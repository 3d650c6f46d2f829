package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	DisplayName string
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued by the identity provider.
// The backend only relies on the stable user id and the display name.
type AccessTokenClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}
