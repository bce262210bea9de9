package entity

import (
	"time"
)

// Notification is a one-way message surfaced to a user as a side effect of a
// booking transition. It is owned by the recipient and only ever mutated to
// mark it read.
type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	BookingID string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Read      bool      `bson:"read" json:"read"`
}
