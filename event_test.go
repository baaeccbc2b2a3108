package sensestick

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawRecord builds one kernel input record the way a 64-bit kernel lays it
// out: timeval seconds, timeval microseconds, type, code, value.
func rawRecord(sec, usec int64, typ, code uint16, value int32) []byte {
	b := make([]byte, rawEventSize)
	binary.LittleEndian.PutUint64(b[0:8], uint64(sec))
	binary.LittleEndian.PutUint64(b[8:16], uint64(usec))
	binary.LittleEndian.PutUint16(b[16:18], typ)
	binary.LittleEndian.PutUint16(b[18:20], code)
	binary.LittleEndian.PutUint32(b[20:24], uint32(value))
	return b
}

func TestDirectionFromCode(t *testing.T) {
	valid := map[uint16]Direction{
		28:  Enter,
		103: Up,
		108: Down,
		105: Left,
		106: Right,
	}
	for code, want := range valid {
		got, err := DirectionFromCode(code)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, code := range []uint16{0, 1, 30, 102, 104, 107, 109, 65535} {
		_, err := DirectionFromCode(code)
		assert.ErrorIs(t, err, ErrBadDirection, "code %d", code)
	}
}

func TestActionFromValue(t *testing.T) {
	valid := map[int32]Action{
		0: Release,
		1: Press,
		2: Hold,
	}
	for value, want := range valid {
		got, err := ActionFromValue(value)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, value := range []int32{-1, 3, 255} {
		_, err := ActionFromValue(value)
		assert.ErrorIs(t, err, ErrBadAction, "value %d", value)
	}
}

func TestDecodeRawKeyEvent(t *testing.T) {
	ev, ok, err := decodeRaw(rawRecord(1700000000, 250000, evKey, uint16(Up), int32(Press)))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Up, ev.Direction)
	assert.Equal(t, Press, ev.Action)
	assert.Equal(t, 1700000000*time.Second+250*time.Millisecond, ev.Timestamp)
	assert.Equal(t, time.Unix(1700000000, 250000*1000).UTC(), ev.Time().UTC())
}

func TestDecodeRawFiltersNonKeyRecords(t *testing.T) {
	// Synchronization markers and relative-axis records share the device
	// with key events; both carry codes that would be invalid directions.
	for _, typ := range []uint16{0x00, 0x02, 0x03} {
		ev, ok, err := decodeRaw(rawRecord(1, 0, typ, 0, 0))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, ev)
	}
}

func TestDecodeRawRejectsUnknownCode(t *testing.T) {
	_, _, err := decodeRaw(rawRecord(1, 0, evKey, 999, int32(Press)))
	assert.ErrorIs(t, err, ErrBadDirection)
}

func TestDecodeRawRejectsUnknownValue(t *testing.T) {
	_, _, err := decodeRaw(rawRecord(1, 0, evKey, uint16(Enter), 7))
	assert.ErrorIs(t, err, ErrBadAction)
}

func TestDecodeRawRejectsPreEpochTimestamp(t *testing.T) {
	_, _, err := decodeRaw(rawRecord(-5, 0, evKey, uint16(Enter), int32(Press)))
	assert.ErrorIs(t, err, ErrBadTimestamp)

	_, _, err = decodeRaw(rawRecord(5, -1, evKey, uint16(Enter), int32(Press)))
	assert.ErrorIs(t, err, ErrBadTimestamp)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Enter", Enter.String())
	assert.Equal(t, "Direction(99)", Direction(99).String())
	assert.Equal(t, "Hold", Hold.String())
	assert.Equal(t, "Action(9)", Action(9).String())
	assert.Equal(t, "Left Press", Event{Direction: Left, Action: Press}.String())
}
