// Package remote routes joystick events to a playback target.
package remote

import (
	"fmt"
	"log"

	"github.com/depeter/sensestick"
)

// Command is a playback action triggered by the stick.
type Command int

const (
	None Command = iota
	PlayPause
	Stop
	SeekForward
	SeekBackward
	SeekForwardLarge
	SeekBackwardLarge
	VolumeUp
	VolumeDown
	Mute
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Select
	Back
)

// commands maps the names accepted in binding overrides to commands.
var commands = map[string]Command{
	"none":                None,
	"play_pause":          PlayPause,
	"stop":                Stop,
	"seek_forward":        SeekForward,
	"seek_backward":       SeekBackward,
	"seek_forward_large":  SeekForwardLarge,
	"seek_backward_large": SeekBackwardLarge,
	"volume_up":           VolumeUp,
	"volume_down":         VolumeDown,
	"mute":                Mute,
	"move_up":             MoveUp,
	"move_down":           MoveDown,
	"move_left":           MoveLeft,
	"move_right":          MoveRight,
	"select":              Select,
	"back":                Back,
}

func (c Command) String() string {
	for name, cmd := range commands {
		if cmd == c {
			return name
		}
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand resolves a command name from a binding override.
func ParseCommand(name string) (Command, error) {
	cmd, ok := commands[name]
	if !ok {
		return None, fmt.Errorf("unknown command %q", name)
	}
	return cmd, nil
}

// Target executes commands on a playback surface, either the embedded
// player or a remote Jellyfin session.
type Target interface {
	Do(cmd Command) error
}

// Run applies bound commands to the target for every event until the
// channel closes. Target failures are logged and do not stop the loop.
func Run(events <-chan sensestick.Event, b Bindings, target Target) {
	for ev := range events {
		cmd := b.Lookup(ev)
		if cmd == None {
			continue
		}
		if err := target.Do(cmd); err != nil {
			log.Printf("Failed to run %s: %v", cmd, err)
		}
	}
}
