package utils

import (
	"sort"
	"strings"
	"time"

	"findmymechanic-service/internal/domain/entity"
)

// ScheduleLayout is the combined date+time layout bookings are entered in.
const ScheduleLayout = "2006-01-02 15:04"

// ParseSchedule parses a booking's scheduled date and time into a single
// instant. The second return value is false when either part is malformed;
// such bookings are tolerated and sorted last, never rejected.
func ParseSchedule(date, timeOfDay string) (time.Time, bool) {
	t, err := time.Parse(ScheduleLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(timeOfDay))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortBookingsBySchedule orders bookings ascending by scheduled date and
// time. Entries whose schedule does not parse sort after all parsable ones,
// keeping their relative order. The sort is stable throughout.
func SortBookingsBySchedule(bookings []*entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ti, oki := ParseSchedule(bookings[i].ScheduledDate, bookings[i].ScheduledTime)
		tj, okj := ParseSchedule(bookings[j].ScheduledDate, bookings[j].ScheduledTime)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ti.Before(tj)
	})
}
