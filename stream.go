package sensestick

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Stream delivers joystick events as they happen. It owns the device handle
// it was converted from; Close releases it.
//
// A receive from Events is the suspension point: the internal reader parks
// on the descriptor until the kernel signals readiness, so records that are
// filtered out never surface as empty items. The stream is not restartable;
// after an error shows up on Errors the device stays open until Close.
type Stream struct {
	file   *os.File
	path   string
	events chan Event
	errs   chan error

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func newStream(f *os.File, path string) *Stream {
	s := &Stream{
		file:   f,
		path:   path,
		events: make(chan Event),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go s.read()
	return s
}

// Events returns the decoded key events in device order. The channel closes
// once the stream fails or is closed; after it closes, Errors tells the two
// cases apart.
func (s *Stream) Events() <-chan Event { return s.events }

// Errors delivers at most one read or decode failure and then closes. A
// close without a value means the stream ended because Close was called.
func (s *Stream) Errors() <-chan error { return s.errs }

// Close releases the device and unblocks the reader. It is safe to call
// more than once and while a receive is in flight.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.file.Close()
	})
	return s.closeErr
}

func (s *Stream) read() {
	defer close(s.errs)
	defer close(s.events)
	buf := make([]byte, rawEventSize)
	for {
		if _, err := io.ReadFull(s.file, buf); err != nil {
			if errors.Is(err, os.ErrClosed) {
				return
			}
			s.errs <- fmt.Errorf("read %s: %w", s.path, err)
			return
		}
		ev, ok, err := decodeRaw(buf)
		if err != nil {
			s.errs <- fmt.Errorf("decode %s: %w", s.path, err)
			return
		}
		if !ok {
			continue
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}
