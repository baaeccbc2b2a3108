package remote

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/sensestick"
)

type recordingTarget struct {
	cmds []Command
	err  error
}

func (r *recordingTarget) Do(cmd Command) error {
	r.cmds = append(r.cmds, cmd)
	return r.err
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("seek_forward_large")
	require.NoError(t, err)
	assert.Equal(t, SeekForwardLarge, cmd)

	_, err = ParseCommand("warp_speed")
	assert.ErrorContains(t, err, "warp_speed")
}

func TestParseDirection(t *testing.T) {
	for name, want := range map[string]sensestick.Direction{
		"enter": sensestick.Enter,
		"Up":    sensestick.Up,
		"DOWN":  sensestick.Down,
		"left":  sensestick.Left,
		"right": sensestick.Right,
	} {
		got, err := ParseDirection(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("northwest")
	assert.Error(t, err)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "play_pause", PlayPause.String())
	assert.Equal(t, "command(99)", Command(99).String())
}

func TestBindingsLookup(t *testing.T) {
	b := PlayerBindings()

	assert.Equal(t, PlayPause, b.Lookup(sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Press}))
	assert.Equal(t, Stop, b.Lookup(sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Hold}))
	// Releases are unbound by default and resolve to None.
	assert.Equal(t, None, b.Lookup(sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Release}))
}

func TestBindingsApply(t *testing.T) {
	b := CastBindings()
	err := b.Apply(
		map[string]string{"enter": "back"},
		map[string]string{"down": "volume_down"},
	)
	require.NoError(t, err)

	assert.Equal(t, Back, b.Lookup(sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Press}))
	assert.Equal(t, VolumeDown, b.Lookup(sensestick.Event{Direction: sensestick.Down, Action: sensestick.Hold}))
	// Untouched entries stay bound.
	assert.Equal(t, MoveUp, b.Lookup(sensestick.Event{Direction: sensestick.Up, Action: sensestick.Press}))
}

func TestDefaultLayoutsDifferPerTarget(t *testing.T) {
	player := PlayerBindings()
	cast := CastBindings()

	enter := sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Press}
	assert.Equal(t, PlayPause, player.Lookup(enter))
	assert.Equal(t, Select, cast.Lookup(enter))

	up := sensestick.Event{Direction: sensestick.Up, Action: sensestick.Press}
	assert.Equal(t, VolumeUp, player.Lookup(up))
	assert.Equal(t, MoveUp, cast.Lookup(up))
}

func TestBindingsApplyRejectsUnknownNames(t *testing.T) {
	b := Bindings{}
	assert.Error(t, b.Apply(map[string]string{"sideways": "select"}, nil))
	assert.Error(t, b.Apply(map[string]string{"up": "launch_missiles"}, nil))
}

func TestRunDispatchesBoundCommands(t *testing.T) {
	events := make(chan sensestick.Event, 4)
	events <- sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Press}
	events <- sensestick.Event{Direction: sensestick.Enter, Action: sensestick.Release} // unbound
	events <- sensestick.Event{Direction: sensestick.Up, Action: sensestick.Hold}
	close(events)

	target := &recordingTarget{}
	Run(events, PlayerBindings(), target)

	assert.Equal(t, []Command{PlayPause, VolumeUp}, target.cmds)
}

func TestRunKeepsGoingAfterTargetError(t *testing.T) {
	events := make(chan sensestick.Event, 2)
	events <- sensestick.Event{Direction: sensestick.Left, Action: sensestick.Press}
	events <- sensestick.Event{Direction: sensestick.Right, Action: sensestick.Press}
	close(events)

	target := &recordingTarget{err: errors.New("session went away")}
	Run(events, PlayerBindings(), target)

	assert.Len(t, target.cmds, 2)
}
