package di

import (
	"os"
	"time"

	"natal_backend/internal/platform/token"
)

// orderTokenTTL is how long an order access token stays valid after checkout.
// Customers come back for their report over several days, so this is much
// longer than a typical session lifetime.
const orderTokenTTL = 72 * time.Hour

// NewOrderIssuer creates the order access token issuer from the environment secret.
func NewOrderIssuer() *token.OrderIssuer {
	return token.NewOrderIssuer(os.Getenv(token.EnvKeyOrderTokenSecret), orderTokenTTL)
}
