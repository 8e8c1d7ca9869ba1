// Package usecase implements the business logic for the chart feature.
package usecase

import "errors"

var (
	// ErrChartNotFound is returned when no chart has been attached to an order yet.
	ErrChartNotFound = errors.New("chart not found")

	// ErrChartAlreadyExists is returned when attempting to attach a second chart to an order.
	ErrChartAlreadyExists = errors.New("chart already exists for this order")

	// ErrOrderNotFound is returned when the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrLocationRequired is returned when a request carries neither coordinates nor a place name.
	ErrLocationRequired = errors.New("location required: provide lat/lon or a place name")

	// ErrPlaceNotFound is returned when a place name cannot be resolved to coordinates.
	ErrPlaceNotFound = errors.New("place not found")
)
