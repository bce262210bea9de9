package entity

import (
	"time"
)

// ServiceType is a reference-data entry for a known service category
// ("Oil", "Brakes", ...). Kept in the relational reference database, not in
// the document store; bookings still accept free-text service tags.
type ServiceType struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
