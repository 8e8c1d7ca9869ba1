// Package token issues and validates signed order-access tokens.
// A token proves that the caller completed checkout for one specific
// order and may attach or read that order's chart and reading.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyOrderTokenSecret is the environment variable holding the HMAC signing secret.
	EnvKeyOrderTokenSecret = "ORDER_TOKEN_SECRET"

	// scopeOrder is the scope claim carried by every order-access token.
	scopeOrder = "order"
)

// OrderIssuer signs order-access tokens with an HMAC secret.
type OrderIssuer struct {
	secret     []byte
	expiration time.Duration
}

// NewOrderIssuer creates a new issuer with the provided secret and token lifetime.
func NewOrderIssuer(secret string, expiration time.Duration) *OrderIssuer {
	return &OrderIssuer{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// IssueOrderToken creates a signed token granting access to the given order.
func (i *OrderIssuer) IssueOrderToken(orderID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   orderID,
		"scope": scopeOrder,
		"exp":   now.Add(i.expiration).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign order token: %w", err)
	}

	return signed, nil
}
