package sensestick

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Linux input event type carried by key press/release records. The driver
// also emits synchronization markers on the same device; those carry other
// type values and never become events.
const evKey = 0x01

// rawEventSize is the size of one kernel input record on 64-bit platforms:
// two 64-bit timeval words followed by u16 type, u16 code and s32 value.
const rawEventSize = 24

// Direction is the axis the joystick moved on. The values are the Linux key
// codes the Sense HAT driver reports, so a Direction can be compared against
// raw codes directly.
type Direction uint16

const (
	Enter Direction = 28  // the stick pressed straight down
	Up    Direction = 103
	Down  Direction = 108
	Left  Direction = 105
	Right Direction = 106
)

// DirectionFromCode maps a raw key code to a Direction. Codes outside the
// five the joystick reports fail with ErrBadDirection.
func DirectionFromCode(code uint16) (Direction, error) {
	switch d := Direction(code); d {
	case Enter, Up, Down, Left, Right:
		return d, nil
	}
	return 0, fmt.Errorf("%w: key code %d", ErrBadDirection, code)
}

func (d Direction) String() string {
	switch d {
	case Enter:
		return "Enter"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", uint16(d))
}

// Action is what the stick did on its axis. The values are the raw key
// states the kernel reports.
type Action int32

const (
	Release Action = 0
	Press   Action = 1
	Hold    Action = 2 // autorepeats while the stick is held
)

// ActionFromValue maps a raw key value to an Action. Values outside the
// three key states fail with ErrBadAction.
func ActionFromValue(value int32) (Action, error) {
	switch a := Action(value); a {
	case Release, Press, Hold:
		return a, nil
	}
	return 0, fmt.Errorf("%w: key value %d", ErrBadAction, value)
}

func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Hold:
		return "Hold"
	}
	return fmt.Sprintf("Action(%d)", int32(a))
}

// Event is a single joystick movement.
type Event struct {
	// Timestamp is the kernel clock reading for the movement, expressed as
	// the elapsed duration since the Unix epoch.
	Timestamp time.Duration
	Direction Direction
	Action    Action
}

// Time converts the event timestamp back to a wall clock reading.
func (e Event) Time() time.Time {
	return time.Unix(0, e.Timestamp.Nanoseconds())
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Direction, e.Action)
}

// decodeRaw decodes one raw kernel record. Records that are not key events
// return ok=false and no error. Key records with a code, value or timestamp
// outside the joystick's domain fail instead of being coerced.
func decodeRaw(b []byte) (ev Event, ok bool, err error) {
	if binary.LittleEndian.Uint16(b[16:18]) != evKey {
		return Event{}, false, nil
	}
	sec := int64(binary.LittleEndian.Uint64(b[0:8]))
	usec := int64(binary.LittleEndian.Uint64(b[8:16]))
	if sec < 0 || usec < 0 {
		return Event{}, false, fmt.Errorf("%w: timeval %d.%d", ErrBadTimestamp, sec, usec)
	}
	direction, err := DirectionFromCode(binary.LittleEndian.Uint16(b[18:20]))
	if err != nil {
		return Event{}, false, err
	}
	action, err := ActionFromValue(int32(binary.LittleEndian.Uint32(b[20:24])))
	if err != nil {
		return Event{}, false, err
	}
	return Event{
		Timestamp: time.Duration(sec)*time.Second + time.Duration(usec)*time.Microsecond,
		Direction: direction,
		Action:    action,
	}, true, nil
}
