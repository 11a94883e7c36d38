// Package availability decides whether a cleaner can take a candidate time
// window given their committed bookings and the travel gap.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

var (
	// ErrSchedulingConflict matches every *ConflictError
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrInvalidInterval candidate window is malformed or empty
	ErrInvalidInterval = errors.New("invalid candidate interval")
)

// ConflictError names the committed booking that blocks a candidate
type ConflictError struct {
	BookingID int64
	StartTime types.TimeString
	EndTime   types.TimeString
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: with booking %d (%s-%s)", ErrSchedulingConflict, e.BookingID, e.StartTime, e.EndTime)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}

// Candidate is the window a new booking wants to occupy
type Candidate struct {
	CleanerID   int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	// ExcludeBookingID skips a booking (the candidate itself when re-checking)
	ExcludeBookingID int64
}

// Verdict is Available or Conflict(booking)
type Verdict struct {
	Available  bool
	GapMinutes int
	Conflict   *domain.Assignment
}

// Err converts a conflict verdict into a *ConflictError, nil when available
func (v Verdict) Err() error {
	if v.Available || v.Conflict == nil {
		return nil
	}
	return &ConflictError{
		BookingID: v.Conflict.BookingID,
		StartTime: v.Conflict.StartTime,
		EndTime:   v.Conflict.EndTime,
	}
}

// Check tests the candidate against existing bookings.
// Bookings of other cleaners, other dates and cancelled ones are ignored.
// Each existing booking is widened by gapMinutes on both sides and the
// half-open overlap test is applied:
//
//	candidate.start < existing.end+gap && candidate.end > existing.start-gap
//
// With zero gap touching intervals are free, with any positive gap they conflict.
// When several bookings conflict the earliest one (then lowest ID) is reported.
func Check(c Candidate, existing []domain.Booking, gapMinutes int) (Verdict, error) {
	start, end := c.StartTime.Minutes(), c.EndTime.Minutes()
	if start < 0 || end < 0 {
		return Verdict{}, fmt.Errorf("%w: %s-%s", types.ErrInvalidTimeString, c.StartTime, c.EndTime)
	}
	if start >= end {
		return Verdict{}, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, c.StartTime, c.EndTime)
	}
	if gapMinutes < 0 {
		gapMinutes = 0
	}

	verdict := Verdict{Available: true, GapMinutes: gapMinutes}

	for i := range existing {
		b := &existing[i]
		if b.CleanerID != c.CleanerID || !b.IsActive() || !sameDay(b.BookingDate, c.BookingDate) {
			continue
		}
		if c.ExcludeBookingID != 0 && b.ID == c.ExcludeBookingID {
			continue
		}

		bStart, bEnd := b.StartTime.Minutes(), b.EndTime.Minutes()
		if bStart < 0 || bEnd < 0 {
			return Verdict{}, fmt.Errorf("%w: booking %d has %s-%s", types.ErrInvalidTimeString, b.ID, b.StartTime, b.EndTime)
		}

		if !(start < bEnd+gapMinutes && end > bStart-gapMinutes) {
			continue
		}

		if verdict.Conflict == nil || precedes(b, verdict.Conflict) {
			a := domain.AssignmentOf(*b)
			verdict.Available = false
			verdict.Conflict = &a
		}
	}

	return verdict, nil
}

// GapFor returns the gap for a channel: the channel's own rule, otherwise the
// global rule, otherwise fallback.
func GapFor(rules []domain.GapRule, channelID int64, fallback int) int {
	global := -1
	for _, r := range rules {
		if r.ChannelID != nil && *r.ChannelID == channelID {
			return r.MinimumGapMinutes
		}
		if r.IsGlobal() && global < 0 {
			global = r.MinimumGapMinutes
		}
	}
	if global >= 0 {
		return global
	}
	return fallback
}

func precedes(b *domain.Booking, current *domain.Assignment) bool {
	bStart, cStart := b.StartTime.Minutes(), current.StartTime.Minutes()
	if bStart != cStart {
		return bStart < cStart
	}
	return b.ID < current.BookingID
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
