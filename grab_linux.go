//go:build linux

package sensestick

import "golang.org/x/sys/unix"

// Grab takes the kernel's exclusive grab on the device. The joystick doubles
// as the arrow keys and enter on a Pi console; grabbing keeps its events out
// of the console keymap while the handle is open.
func (j *JoyStick) Grab() error {
	return j.ioctlGrab(1)
}

// Ungrab releases the exclusive grab.
func (j *JoyStick) Ungrab() error {
	return j.ioctlGrab(0)
}

func (j *JoyStick) ioctlGrab(v int) error {
	conn, err := j.file.SyscallConn()
	if err != nil {
		return err
	}
	var ioctlErr error
	if err := conn.Control(func(fd uintptr) {
		ioctlErr = unix.IoctlSetInt(int(fd), unix.EVIOCGRAB, v)
	}); err != nil {
		return err
	}
	return ioctlErr
}
