package utils

import (
	"testing"

	"findmymechanic-service/internal/domain/entity"
)

func TestParseSchedule(t *testing.T) {
	ts, ok := ParseSchedule("2024-05-01", "10:00")
	if !ok {
		t.Fatalf("expected schedule to parse")
	}
	if ts.Year() != 2024 || ts.Month() != 5 || ts.Day() != 1 || ts.Hour() != 10 {
		t.Fatalf("unexpected parsed time: %v", ts)
	}

	if _, ok := ParseSchedule("not-a-date", "10:00"); ok {
		t.Fatalf("expected malformed date to fail")
	}
	if _, ok := ParseSchedule("2024-05-01", "25:99"); ok {
		t.Fatalf("expected malformed time to fail")
	}
	if _, ok := ParseSchedule(" 2024-05-01 ", " 10:00 "); !ok {
		t.Fatalf("expected padded schedule to parse")
	}
}

func TestSortBookingsBySchedule(t *testing.T) {
	bookings := []*entity.Booking{
		{ID: "b1", ScheduledDate: "2024-06-02", ScheduledTime: "09:00"},
		{ID: "bad1", ScheduledDate: "soon", ScheduledTime: "??"},
		{ID: "b2", ScheduledDate: "2024-06-01", ScheduledTime: "14:30"},
		{ID: "bad2", ScheduledDate: "", ScheduledTime: ""},
		{ID: "b3", ScheduledDate: "2024-06-01", ScheduledTime: "08:00"},
	}

	SortBookingsBySchedule(bookings)

	want := []string{"b3", "b2", "b1", "bad1", "bad2"}
	for i, id := range want {
		if bookings[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, bookings[i].ID, id)
		}
	}
}
