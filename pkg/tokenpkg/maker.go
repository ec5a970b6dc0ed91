// Package tokenpkg creates and verifies access tokens.
package tokenpkg

import (
	"fmt"
	"time"
)

// Supported token types.
const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for the given user and duration.
	CreateToken(userID int64, username string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the Maker for the given token type.
func New(tokenType, symmetricKey string) (Maker, error) {
	switch tokenType {
	case TypePaseto:
		m, err := NewPasetoMaker(symmetricKey)
		if err != nil {
			return nil, err
		}

		return m, nil
	case TypeJWT:
		m, err := NewJWTMaker(symmetricKey)
		if err != nil {
			return nil, err
		}

		return m, nil
	}

	return nil, fmt.Errorf("unsupported token type %q", tokenType)
}
