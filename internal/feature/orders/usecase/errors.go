// Package usecase implements the business logic for the orders feature.
package usecase

import "errors"

var (
	// ErrUnknownPlan is returned when a request names a plan outside the catalog.
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrOrderNotFound is returned when an order cannot be found by ID.
	ErrOrderNotFound = errors.New("order not found")
)
