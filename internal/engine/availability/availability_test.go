package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

const cleaner int64 = 7

var bookingDay = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func booking(id, cleanerID int64, start, end string, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:          id,
		CleanerID:   cleanerID,
		BookingDate: bookingDay,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		Status:      status,
	}
}

func candidate(start, end string) Candidate {
	return Candidate{
		CleanerID:   cleaner,
		BookingDate: bookingDay,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
	}
}

func TestCheck_Scenarios(t *testing.T) {
	existing := []domain.Booking{booking(1, cleaner, "10:00", "12:00", domain.StatusConfirmed)}

	tests := []struct {
		name         string
		start, end   string
		gap          int
		wantConflict int64
	}{
		{"inside gap after booking", "12:15", "13:00", 30, 1},
		{"exactly at end plus gap", "12:30", "13:00", 30, 0},
		{"touching with zero gap", "12:00", "13:00", 0, 0},
		{"touching with positive gap", "12:00", "13:00", 1, 1},
		{"inside gap before booking", "08:00", "09:45", 30, 1},
		{"ends exactly at start minus gap", "08:00", "09:30", 30, 0},
		{"plain overlap", "11:00", "11:30", 0, 1},
		{"covers whole booking", "09:00", "13:00", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Check(candidate(tt.start, tt.end), existing, tt.gap)
			require.NoError(t, err)

			if tt.wantConflict == 0 {
				assert.True(t, v.Available)
				assert.NoError(t, v.Err())
				return
			}

			assert.False(t, v.Available)
			require.NotNil(t, v.Conflict)
			assert.Equal(t, tt.wantConflict, v.Conflict.BookingID)

			var conflict *ConflictError
			require.ErrorAs(t, v.Err(), &conflict)
			assert.Equal(t, tt.wantConflict, conflict.BookingID)
			assert.ErrorIs(t, v.Err(), ErrSchedulingConflict)
		})
	}
}

func TestCheck_IgnoresIrrelevantBookings(t *testing.T) {
	otherDay := booking(3, cleaner, "10:00", "12:00", domain.StatusConfirmed)
	otherDay.BookingDate = bookingDay.AddDate(0, 0, 1)

	existing := []domain.Booking{
		booking(1, cleaner, "10:00", "12:00", domain.StatusCancelled),
		booking(2, cleaner+1, "10:00", "12:00", domain.StatusConfirmed),
		otherDay,
	}

	v, err := Check(candidate("10:30", "11:30"), existing, 30)
	require.NoError(t, err)
	assert.True(t, v.Available)
	assert.Equal(t, 30, v.GapMinutes)
}

func TestCheck_ExcludesItself(t *testing.T) {
	existing := []domain.Booking{booking(5, cleaner, "10:00", "12:00", domain.StatusConfirmed)}

	c := candidate("10:00", "12:00")
	c.ExcludeBookingID = 5

	v, err := Check(c, existing, 30)
	require.NoError(t, err)
	assert.True(t, v.Available)
}

func TestCheck_ReportsEarliestConflict(t *testing.T) {
	existing := []domain.Booking{
		booking(9, cleaner, "14:00", "15:00", domain.StatusConfirmed),
		booking(4, cleaner, "11:00", "12:00", domain.StatusPending),
		booking(2, cleaner, "11:00", "11:30", domain.StatusConfirmed),
	}

	v, err := Check(candidate("10:00", "16:00"), existing, 0)
	require.NoError(t, err)
	require.NotNil(t, v.Conflict)
	assert.Equal(t, int64(2), v.Conflict.BookingID)
}

func TestCheck_SymmetricUnderGap(t *testing.T) {
	windows := [][2]string{
		{"08:00", "09:00"}, {"09:15", "10:00"}, {"09:45", "11:00"},
		{"10:30", "12:00"}, {"12:30", "13:00"}, {"13:00", "14:00"},
	}

	for _, gap := range []int{0, 15, 30, 60} {
		for i, a := range windows {
			for j, b := range windows {
				if i == j {
					continue
				}
				va, err := Check(candidate(b[0], b[1]), []domain.Booking{booking(1, cleaner, a[0], a[1], domain.StatusConfirmed)}, gap)
				require.NoError(t, err)
				vb, err := Check(candidate(a[0], a[1]), []domain.Booking{booking(2, cleaner, b[0], b[1], domain.StatusConfirmed)}, gap)
				require.NoError(t, err)

				assert.Equal(t, va.Available, vb.Available, "gap=%d a=%v b=%v", gap, a, b)
			}
		}
	}
}

func TestCheck_InvalidCandidate(t *testing.T) {
	_, err := Check(candidate("12:00", "12:00"), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Check(Candidate{CleanerID: cleaner, StartTime: "bad", EndTime: "12:00"}, nil, 0)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestCheck_NegativeGapIsZero(t *testing.T) {
	existing := []domain.Booking{booking(1, cleaner, "10:00", "12:00", domain.StatusConfirmed)}

	v, err := Check(candidate("12:00", "13:00"), existing, -10)
	require.NoError(t, err)
	assert.True(t, v.Available)
}

func TestGapFor(t *testing.T) {
	rules := []domain.GapRule{
		{ID: 1, ChannelID: nil, MinimumGapMinutes: 30},
		{ID: 2, ChannelID: ptr.Ptr(int64(3)), MinimumGapMinutes: 45},
	}

	assert.Equal(t, 45, GapFor(rules, 3, 10))
	assert.Equal(t, 30, GapFor(rules, 1, 10))
	assert.Equal(t, 10, GapFor(rules[1:], 1, 10))
	assert.Equal(t, 10, GapFor(nil, 1, 10))
}
