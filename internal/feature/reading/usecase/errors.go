// Package usecase implements the business logic for the reading feature.
package usecase

import "errors"

var (
	// ErrOrderNotFound is returned when the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrChartNotAttached is returned when the order has no stored chart to interpret.
	ErrChartNotAttached = errors.New("no chart attached to this order")

	// ErrUnknownSign is returned when a stored document names a zodiac sign
	// the interpretation library does not carry.
	ErrUnknownSign = errors.New("unknown zodiac sign")

	// ErrUnknownHouse is returned when a house number is outside 1..12.
	ErrUnknownHouse = errors.New("unknown house")

	// ErrMalformedDocument is returned when a stored chart document cannot be parsed.
	ErrMalformedDocument = errors.New("malformed chart document")
)
