// Package sensestick reads the joystick of a Raspberry Pi Sense HAT.
//
// The joystick registers as a Linux input event device. Open locates it by
// the hardware name its driver reports and returns a JoyStick handle for
// blocking batch reads; Stream converts the handle into a channel-based
// source for callers that multiplex the stick with other work.
package sensestick

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DeviceName is the hardware name the Sense HAT joystick driver registers
// with the kernel. Discovery matches against it exactly.
const DeviceName = "Raspberry Pi Sense HAT Joystick"

const (
	devicePattern = "/dev/input/event*"
	sysfsInputDir = "/sys/class/input"
)

// Errors reported by discovery and decoding. Plain I/O failures are wrapped
// with the device path and left as they are.
var (
	// ErrNotFound means no input event device reports the joystick name.
	ErrNotFound = errors.New("no Sense HAT joystick found")
	// ErrInvalidPattern means the device glob pattern itself is malformed.
	ErrInvalidPattern = errors.New("invalid device pattern")
	// ErrBadDirection means a key record carried a code outside the five
	// directions the joystick reports.
	ErrBadDirection = errors.New("unknown direction code")
	// ErrBadAction means a key record carried a value outside the three
	// key states.
	ErrBadAction = errors.New("unknown action value")
	// ErrBadTimestamp means a record's clock reading precedes the Unix epoch.
	ErrBadTimestamp = errors.New("event timestamp precedes the Unix epoch")
)

// JoyStick is an open handle to the joystick device.
//
// A handle belongs to one goroutine at a time. Stream consumes the handle;
// after the conversion only the returned Stream may be used.
type JoyStick struct {
	file *os.File
	path string
	name string
}

// Open locates the joystick among the input event devices and returns an
// open handle to it. Devices that cannot be opened fail the search rather
// than being skipped, so permission problems surface instead of turning
// into a missing joystick.
func Open() (*JoyStick, error) {
	return open(devicePattern, sysfsInputDir)
}

// OpenPath opens a specific event node, bypassing discovery. The node is
// trusted to be the joystick; no name check is performed.
func OpenPath(path string) (*JoyStick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &JoyStick{file: f, path: path, name: DeviceName}, nil
}

func open(pattern, sysfsDir string) (*JoyStick, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		name, err := hardwareName(sysfsDir, filepath.Base(path))
		if err != nil || name != DeviceName {
			f.Close()
			continue
		}
		return &JoyStick{file: f, path: path, name: name}, nil
	}
	return nil, fmt.Errorf("%w: no input device reports %q", ErrNotFound, DeviceName)
}

// hardwareName reads the name the kernel exports for an input node, e.g.
// /sys/class/input/event3/device/name for /dev/input/event3.
func hardwareName(sysfsDir, node string) (string, error) {
	b, err := os.ReadFile(filepath.Join(sysfsDir, node, "device", "name"))
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

// eventBatch is the most records a single blocking read returns.
const eventBatch = 64

// Events blocks until the device yields raw records and returns the decoded
// batch in device order. Records that are not key events are dropped, so a
// batch may come back empty. A key record outside the joystick's domain or
// a torn read fails the whole batch.
func (j *JoyStick) Events() ([]Event, error) {
	if j.file == nil {
		return nil, fmt.Errorf("read %s: %w", j.path, os.ErrClosed)
	}
	buf := make([]byte, eventBatch*rawEventSize)
	n, err := j.file.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", j.path, err)
	}
	if n == 0 || n%rawEventSize != 0 {
		return nil, fmt.Errorf("read %s: short read of %d bytes", j.path, n)
	}
	events := make([]Event, 0, n/rawEventSize)
	for off := 0; off < n; off += rawEventSize {
		ev, ok, err := decodeRaw(buf[off : off+rawEventSize])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", j.path, err)
		}
		if ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// Stream converts the handle into an asynchronous event source. Ownership
// of the device moves to the returned Stream; the JoyStick must not be used
// afterwards.
func (j *JoyStick) Stream() *Stream {
	s := newStream(j.file, j.path)
	j.file = nil
	return s
}

// Fd returns the raw file descriptor for callers that register the device
// with their own poller instead of using Stream. The descriptor remains
// owned by the handle and becomes invalid once the handle is closed.
func (j *JoyStick) Fd() uintptr {
	return j.file.Fd()
}

// Name returns the hardware name the device reported during discovery.
func (j *JoyStick) Name() string { return j.name }

// Path returns the event node the handle reads from.
func (j *JoyStick) Path() string { return j.path }

// Close releases the device. Closing a consumed or already closed handle is
// a no-op.
func (j *JoyStick) Close() error {
	if j.file == nil {
		return nil
	}
	err := j.file.Close()
	j.file = nil
	return err
}
