package entity

import "time"

// ChartRecord is the persisted form of a computed chart, bound to the
// order that paid for it. The full canonical document is stored verbatim
// so it can be served byte-for-byte later; Hash alone is enough to verify
// it was not altered.
type ChartRecord struct {
	// OrderID is the order this chart belongs to. One chart per order.
	OrderID string `gorm:"primaryKey;size:36"`

	// Name is the subject's name as submitted at attach time.
	Name string `gorm:"size:255;not null"`

	// Hash is the SHA-256 content hash of Document.
	Hash string `gorm:"size:64;not null"`

	// Document is the canonical JSON encoding of the chart.
	Document []byte `gorm:"not null"`

	// CreatedAt is the timestamp when the chart was attached.
	CreatedAt time.Time
}
