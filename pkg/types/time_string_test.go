package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "08:30", want: "08:30"},
		{name: "hh:mm:ss from postgres", input: "12:15:00", want: "12:15"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "end of day with seconds", input: "24:00:00", want: "24:00"},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := MustTimeString("10:00")

	end, err := start.AddMinutes(150)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:30"), end)

	midnight, err := MustTimeString("22:00").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), midnight)
	assert.Equal(t, MinutesPerDay, midnight.Minutes())

	_, err = MustTimeString("23:00").AddMinutes(90)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("09:00")
	b := MustTimeString("09:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.Equal(t, 540, a.Minutes())
	assert.Equal(t, -1, TimeString("x").Minutes())
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("AST", 3*60*60)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	got := MustTimeString("13:45").On(date, loc)

	assert.Equal(t, time.Date(2025, 3, 14, 13, 45, 0, 0, loc), got)
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("07:05:00")))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	v, err := MustTimeString("18:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "18:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
