package domain

import "github.com/m04kA/SMC-CleaningService/pkg/types"

// Assignment is the transient (cleaner, interval) tuple the availability check
// works on. It is recomputed from live bookings and never stored.
type Assignment struct {
	BookingID int64
	CleanerID int64
	StartTime types.TimeString
	EndTime   types.TimeString
}

// AssignmentOf builds the assignment view of a booking
func AssignmentOf(b Booking) Assignment {
	return Assignment{
		BookingID: b.ID,
		CleanerID: b.CleanerID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

// DurationMinutes returns the length of the assignment interval
func (a Assignment) DurationMinutes() int {
	return a.EndTime.Minutes() - a.StartTime.Minutes()
}
