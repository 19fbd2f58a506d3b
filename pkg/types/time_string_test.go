package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		wantErr bool
	}{
		{name: "valid morning", value: "09:00", wantErr: false},
		{name: "valid midnight", value: "00:00", wantErr: false},
		{name: "valid end of day", value: "23:59", wantErr: false},
		{name: "missing leading zero", value: "9:00", wantErr: true},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "10:60", wantErr: true},
		{name: "with seconds", value: "10:00:00", wantErr: true},
		{name: "wrong separator", value: "09-30", wantErr: true},
		{name: "non-digit", value: "0a:30", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "abcde", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		value TimeString
		want  int
	}{
		{value: "00:00", want: 0},
		{value: "09:30", want: 570},
		{value: "23:59", want: 1439},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			got, err := tt.value.Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "simple add", value: "10:00", minutes: 60, want: "11:00"},
		{name: "crosses hour boundary", value: "10:45", minutes: 30, want: "11:15"},
		{name: "exactly midnight is out of range", value: "23:00", minutes: 60, wantErr: true},
		{name: "crosses midnight", value: "23:50", minutes: 20, wantErr: true},
		{name: "negative below zero", value: "00:10", minutes: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeString_At(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)

	instant, err := TimeString("10:30").At(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, loc), instant)
	assert.Equal(t, loc, instant.Location())
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 6, 15, 9, 5, 33, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("string with seconds from postgres TIME", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("plain string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("18:30"))
		assert.Equal(t, TimeString("18:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("07:15")))
		assert.Equal(t, TimeString("07:15"), ts)
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 14, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("14:45"), ts)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
