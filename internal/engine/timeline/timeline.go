// Package timeline maps committed bookings onto a normalized [0, 1]
// coordinate space over a visible window of the day. It is a read-only view
// and never decides whether a slot is free.
package timeline

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// ErrInvalidWindow visible window is malformed or empty
var ErrInvalidWindow = errors.New("invalid visible window")

// Window is the visible [Start, End) range of the day
type Window struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate checks that the window is a non-empty range
func (w Window) Validate() error {
	start, end := w.Start.Minutes(), w.End.Minutes()
	if start < 0 || end < 0 || start >= end {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Placement is the position of one booking on the timeline
type Placement struct {
	BookingID int64
	CleanerID int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Offset    float64 // (start - visibleStart) / span, clamped to [0, 1]
	Width     float64 // visible part of the duration / span
	Clipped   bool    // booking extends beyond the window
}

// OffsetPercent returns Offset in percent
func (p Placement) OffsetPercent() float64 { return p.Offset * 100 }

// WidthPercent returns Width in percent
func (p Placement) WidthPercent() float64 { return p.Width * 100 }

// Lane is the timeline row of a single cleaner
type Lane struct {
	CleanerID  int64
	Placements iter.Seq[Placement]
}

// Project returns a lazy sequence of placements ordered by start time.
// Cancelled bookings are skipped. Bookings partially or fully outside the
// window are clipped to its boundary instead of being dropped, so a booking
// entirely outside gets zero width at the nearest edge.
// The sequence may be ranged over any number of times with identical results.
func Project(bookings []domain.Booking, window Window) (iter.Seq[Placement], error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	visible := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			visible = append(visible, b)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		si, sj := visible[i].StartTime.Minutes(), visible[j].StartTime.Minutes()
		if si != sj {
			return si < sj
		}
		return visible[i].ID < visible[j].ID
	})

	vs, ve := window.Start.Minutes(), window.End.Minutes()
	span := float64(ve - vs)

	return func(yield func(Placement) bool) {
		for i := range visible {
			if !yield(place(&visible[i], vs, ve, span)) {
				return
			}
		}
	}, nil
}

// ProjectLanes groups bookings by cleaner (ascending cleaner ID) and projects
// each group over the same window.
func ProjectLanes(bookings []domain.Booking, window Window) ([]Lane, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	byCleaner := make(map[int64][]domain.Booking)
	for _, b := range bookings {
		if b.IsActive() {
			byCleaner[b.CleanerID] = append(byCleaner[b.CleanerID], b)
		}
	}

	cleaners := make([]int64, 0, len(byCleaner))
	for id := range byCleaner {
		cleaners = append(cleaners, id)
	}
	sort.Slice(cleaners, func(i, j int) bool { return cleaners[i] < cleaners[j] })

	lanes := make([]Lane, 0, len(cleaners))
	for _, id := range cleaners {
		seq, err := Project(byCleaner[id], window)
		if err != nil {
			return nil, err
		}
		lanes = append(lanes, Lane{CleanerID: id, Placements: seq})
	}

	return lanes, nil
}

func place(b *domain.Booking, vs, ve int, span float64) Placement {
	start, end := b.StartTime.Minutes(), b.EndTime.Minutes()

	clippedStart := clamp(start, vs, ve)
	clippedEnd := clamp(end, vs, ve)
	if clippedEnd < clippedStart {
		clippedEnd = clippedStart
	}

	return Placement{
		BookingID: b.ID,
		CleanerID: b.CleanerID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Offset:    float64(clippedStart-vs) / span,
		Width:     float64(clippedEnd-clippedStart) / span,
		Clipped:   start < vs || end > ve,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
