package sensestick

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamWait = 2 * time.Second

func recvEvent(t *testing.T, s *Stream) Event {
	t.Helper()
	select {
	case ev, ok := <-s.Events():
		require.True(t, ok, "events channel closed early")
		return ev
	case <-time.After(streamWait):
		t.Fatal("timed out waiting for an event")
		return Event{}
	}
}

func recvError(t *testing.T, s *Stream) (error, bool) {
	t.Helper()
	select {
	case err, ok := <-s.Errors():
		return err, ok
	case <-time.After(streamWait):
		t.Fatal("timed out waiting on the error channel")
		return nil, false
	}
}

func waitEventsClosed(t *testing.T, s *Stream) {
	t.Helper()
	select {
	case _, ok := <-s.Events():
		assert.False(t, ok, "expected the events channel to close")
	case <-time.After(streamWait):
		t.Fatal("timed out waiting for the events channel to close")
	}
}

func TestStreamDeliversEventsAndFiltersRecords(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	// A non-key record first: the stream must suspend through it without
	// surfacing anything, then yield the key events one at a time.
	var buf []byte
	buf = append(buf, rawRecord(50, 0, 0x00, 0, 0)...)
	buf = append(buf, rawRecord(50, 10, evKey, uint16(Right), int32(Press))...)
	buf = append(buf, rawRecord(50, 20, evKey, uint16(Right), int32(Release))...)
	_, err = w.Write(buf)
	require.NoError(t, err)

	s := newStream(r, "pipe")
	defer s.Close()

	first := recvEvent(t, s)
	assert.Equal(t, Event{Timestamp: 50*time.Second + 10*time.Microsecond, Direction: Right, Action: Press}, first)

	second := recvEvent(t, s)
	assert.Equal(t, Right, second.Direction)
	assert.Equal(t, Release, second.Action)

	// Closing the write end fails the next read; the failure must arrive on
	// Errors and terminate Events.
	require.NoError(t, w.Close())
	err, ok := recvError(t, s)
	require.True(t, ok)
	assert.ErrorIs(t, err, io.EOF)
	waitEventsClosed(t, s)
}

func TestStreamSurfacesDecodeFault(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write(rawRecord(50, 0, evKey, uint16(Enter), 9))
	require.NoError(t, err)

	s := newStream(r, "pipe")
	defer s.Close()

	err, ok := recvError(t, s)
	require.True(t, ok)
	assert.ErrorIs(t, err, ErrBadAction)
	waitEventsClosed(t, s)
}

func TestStreamCloseStopsReaderWithoutError(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	s := newStream(r, "pipe")
	require.NoError(t, s.Close())

	waitEventsClosed(t, s)
	err, ok := recvError(t, s)
	assert.False(t, ok, "close must not surface an error, got %v", err)

	assert.NoError(t, s.Close())
}

func TestStreamCloseUnblocksPendingDelivery(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	s := newStream(r, "pipe")

	// The reader decodes the record and parks on the unbuffered events
	// channel because nobody receives. Close must still stop it.
	_, err = w.Write(rawRecord(50, 0, evKey, uint16(Left), int32(Press)))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, s.Close())

	// The parked delivery may still win the race and hand over the event;
	// after at most one stray item the channel has to close.
	deadline := time.After(streamWait)
	for {
		select {
		case _, ok := <-s.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the events channel to close")
		}
	}
}
