// Package auth resolves the owner id that scopes all remote operations.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dspolyakov/buildpad/internal/common"
)

// OwnerID extracts the subject claim from a session token. The token was
// signed by the hosted auth service and is verified there on every store
// call; locally it is only the source of the scoping key, so the parse is
// unverified.
func OwnerID(tokenString string) (string, error) {
	if tokenString == "" {
		return "", common.ErrNoOwner
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("failed to read subject claim: %w", err)
	}
	if sub == "" {
		return "", common.ErrNoOwner
	}
	return sub, nil
}
