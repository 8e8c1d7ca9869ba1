// Package entity defines the domain entities for the orders feature.
package entity

import "time"

// Order represents a purchased report order. Payment itself is handled by
// an external checkout service; the order only records what was bought and
// by whom.
type Order struct {
	// ID is the unique identifier for the order (UUID).
	ID string `gorm:"primaryKey;size:36"`

	// Plan is the code of the purchased report tier.
	Plan string `gorm:"size:32;not null"`

	// CustomerEmail is the buyer's email address.
	CustomerEmail string `gorm:"size:255;not null"`

	// CustomerName is the buyer's display name. Optional.
	CustomerName string `gorm:"size:255"`

	// CreatedAt is the timestamp when the order was created.
	CreatedAt time.Time
}
