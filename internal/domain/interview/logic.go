package interview

import (
	"fmt"
	"time"
)

// GenerateTimeSlots produces the bookable "HH:MM" grid from startHour:00 up
// to and including endHour:00, stepping by interval minutes. No slot past
// endHour:00 is emitted; the default booking grid (9, 17, 30) yields 17
// slots.
func GenerateTimeSlots(startHour, endHour, interval int) []string {
	slots := []string{}
	if interval <= 0 || endHour < startHour {
		return slots
	}
	for minutes := startHour * 60; minutes <= endHour*60; minutes += interval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return slots
}

// CombineDateTime parses a "YYYY-MM-DD" date and "HH:MM" time into one
// instant.
func CombineDateTime(date, timeOfDay string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", date+" "+timeOfDay)
}

// Overlaps reports whether two half-open interview windows intersect.
func Overlaps(startA time.Time, durationA time.Duration, startB time.Time, durationB time.Duration) bool {
	endA := startA.Add(durationA)
	endB := startB.Add(durationB)
	return startA.Before(endB) && startB.Before(endA)
}

// IsUpcoming reports whether the combined date and time is strictly after
// now. Unparseable input is never upcoming.
func IsUpcoming(date, timeOfDay string, now time.Time) bool {
	at, err := CombineDateTime(date, timeOfDay)
	if err != nil {
		return false
	}
	return at.After(now)
}

// IsToday reports whether date falls on the same calendar day as now,
// ignoring time of day.
func IsToday(date string, now time.Time) bool {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return parsed.Year() == now.Year() && parsed.YearDay() == now.YearDay()
}

var transitions = map[Status][]Status{
	StatusScheduled:   {StatusInProgress, StatusCompleted, StatusRescheduled, StatusCancelled, StatusNoShow},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled, StatusInProgress, StatusCompleted, StatusRescheduled, StatusCancelled, StatusNoShow},
	StatusNoShow:      {StatusRescheduled, StatusCancelled},
}

// CanTransition reports whether the status machine allows moving from one
// status to another. Completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func Terminal(status Status) bool {
	return status == StatusCompleted || status == StatusCancelled
}
