// Package templates builds the user-facing message bodies emitted by the
// booking lifecycle. Wording is kept identical to what the mobile client
// wrote, so existing notification feeds render unchanged.
package templates

import (
	"fmt"
)

// BookingDecisionMessage renders the notification body for a booking that
// was just accepted or rejected.
func BookingDecisionMessage(status, date, timeOfDay string) string {
	return fmt.Sprintf("Your booking on %s at %s has been %s", date, timeOfDay, status)
}
