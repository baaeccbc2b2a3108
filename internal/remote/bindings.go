package remote

import (
	"fmt"
	"strings"

	"github.com/depeter/sensestick"
)

// Key pairs a stick direction with the action that triggered it.
type Key struct {
	Direction sensestick.Direction
	Action    sensestick.Action
}

// Bindings maps stick movements to commands. Movements without an entry are
// ignored.
type Bindings map[Key]Command

// Lookup resolves the command bound to an event.
func (b Bindings) Lookup(ev sensestick.Event) Command {
	return b[Key{ev.Direction, ev.Action}]
}

// Apply overlays config overrides onto the bindings. The maps use direction
// names as keys and command names as values; hold entries fire on the
// kernel's autorepeat, so they repeat while the stick is held.
func (b Bindings) Apply(press, hold map[string]string) error {
	if err := b.apply(press, sensestick.Press); err != nil {
		return err
	}
	return b.apply(hold, sensestick.Hold)
}

func (b Bindings) apply(overrides map[string]string, action sensestick.Action) error {
	for dirName, cmdName := range overrides {
		dir, err := ParseDirection(dirName)
		if err != nil {
			return err
		}
		cmd, err := ParseCommand(cmdName)
		if err != nil {
			return err
		}
		b[Key{dir, action}] = cmd
	}
	return nil
}

// ParseDirection resolves a direction name from a binding override.
func ParseDirection(name string) (sensestick.Direction, error) {
	switch strings.ToLower(name) {
	case "enter":
		return sensestick.Enter, nil
	case "up":
		return sensestick.Up, nil
	case "down":
		return sensestick.Down, nil
	case "left":
		return sensestick.Left, nil
	case "right":
		return sensestick.Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// PlayerBindings is the default layout for driving the embedded player.
func PlayerBindings() Bindings {
	return Bindings{
		{sensestick.Enter, sensestick.Press}: PlayPause,
		{sensestick.Enter, sensestick.Hold}:  Stop,
		{sensestick.Right, sensestick.Press}: SeekForward,
		{sensestick.Right, sensestick.Hold}:  SeekForwardLarge,
		{sensestick.Left, sensestick.Press}:  SeekBackward,
		{sensestick.Left, sensestick.Hold}:   SeekBackwardLarge,
		{sensestick.Up, sensestick.Press}:    VolumeUp,
		{sensestick.Up, sensestick.Hold}:     VolumeUp,
		{sensestick.Down, sensestick.Press}:  VolumeDown,
		{sensestick.Down, sensestick.Hold}:   VolumeDown,
	}
}

// CastBindings is the default layout for steering a remote session.
func CastBindings() Bindings {
	return Bindings{
		{sensestick.Up, sensestick.Press}:    MoveUp,
		{sensestick.Up, sensestick.Hold}:     MoveUp,
		{sensestick.Down, sensestick.Press}:  MoveDown,
		{sensestick.Down, sensestick.Hold}:   MoveDown,
		{sensestick.Left, sensestick.Press}:  MoveLeft,
		{sensestick.Left, sensestick.Hold}:   MoveLeft,
		{sensestick.Right, sensestick.Press}: MoveRight,
		{sensestick.Right, sensestick.Hold}:  MoveRight,
		{sensestick.Enter, sensestick.Press}: Select,
		{sensestick.Enter, sensestick.Hold}:  PlayPause,
	}
}
