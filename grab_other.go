//go:build !linux

package sensestick

import "errors"

var errGrabUnsupported = errors.New("exclusive grab requires linux")

// Grab is a no-op error on non-Linux platforms.
func (j *JoyStick) Grab() error {
	return errGrabUnsupported
}

// Ungrab is a no-op error on non-Linux platforms.
func (j *JoyStick) Ungrab() error {
	return errGrabUnsupported
}
