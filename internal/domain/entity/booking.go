package entity

import (
	"time"
)

// Booking status values. A booking starts Pending and transitions at most
// once, to Accepted or Rejected. Both are terminal. The string values match
// the documents written by the mobile client.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Decision is a mechanic's verdict on a pending booking.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Status returns the terminal status the decision leads to.
func (d Decision) Status() string {
	if d == DecisionAccept {
		return StatusAccepted
	}
	return StatusRejected
}

// Valid reports whether the decision is one of the two known verdicts.
func (d Decision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}

// Booking represents a requested service engagement between a user and a
// mechanic. Bookings are never deleted; decided ones are retained as history.
type Booking struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	UserID         string     `bson:"userId" json:"userId"`
	MechanicID     string     `bson:"mechanicId" json:"mechanicId"`
	ServiceType    string     `bson:"serviceType" json:"serviceType"`
	ScheduledDate  string     `bson:"date" json:"scheduledDate"` // yyyy-mm-dd
	ScheduledTime  string     `bson:"time" json:"scheduledTime"` // HH:MM
	Location       string     `bson:"location" json:"location"`
	Status         string     `bson:"status" json:"status"`
	IdempotencyKey string     `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	DecidedAt      *time.Time `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}

// Decided reports whether the booking has reached a terminal status.
func (b *Booking) Decided() bool {
	return b.Status != StatusPending
}
