package jellyfin

import (
	"fmt"

	jellyfin "github.com/sj14/jellyfin-go/api"

	"github.com/depeter/sensestick/internal/constants"
	"github.com/depeter/sensestick/internal/remote"
)

// SessionTarget drives a remote Jellyfin session as a remote.Target.
type SessionTarget struct {
	c         *Client
	sessionID string
	seekSmall int64
	seekLarge int64
}

// Remote returns a target that forwards stick commands to the given
// session. Seek steps are in seconds.
func (c *Client) Remote(sessionID string, seekSmall, seekLarge float64) *SessionTarget {
	return &SessionTarget{
		c:         c,
		sessionID: sessionID,
		seekSmall: int64(seekSmall * constants.TicksPerSecond),
		seekLarge: int64(seekLarge * constants.TicksPerSecond),
	}
}

// generalCommands maps navigation commands onto Jellyfin general commands.
var generalCommands = map[remote.Command]jellyfin.GeneralCommandType{
	remote.MoveUp:     jellyfin.GENERALCOMMANDTYPE_MOVE_UP,
	remote.MoveDown:   jellyfin.GENERALCOMMANDTYPE_MOVE_DOWN,
	remote.MoveLeft:   jellyfin.GENERALCOMMANDTYPE_MOVE_LEFT,
	remote.MoveRight:  jellyfin.GENERALCOMMANDTYPE_MOVE_RIGHT,
	remote.Select:     jellyfin.GENERALCOMMANDTYPE_SELECT,
	remote.Back:       jellyfin.GENERALCOMMANDTYPE_BACK,
	remote.VolumeUp:   jellyfin.GENERALCOMMANDTYPE_VOLUME_UP,
	remote.VolumeDown: jellyfin.GENERALCOMMANDTYPE_VOLUME_DOWN,
	remote.Mute:       jellyfin.GENERALCOMMANDTYPE_TOGGLE_MUTE,
}

// Do implements remote.Target.
func (t *SessionTarget) Do(cmd remote.Command) error {
	if gc, ok := generalCommands[cmd]; ok {
		return t.general(gc)
	}
	switch cmd {
	case remote.PlayPause:
		return t.playstate(jellyfin.PLAYSTATECOMMAND_PLAY_PAUSE, nil)
	case remote.Stop:
		return t.playstate(jellyfin.PLAYSTATECOMMAND_STOP, nil)
	case remote.SeekForward:
		return t.seek(t.seekSmall)
	case remote.SeekBackward:
		return t.seek(-t.seekSmall)
	case remote.SeekForwardLarge:
		return t.seek(t.seekLarge)
	case remote.SeekBackwardLarge:
		return t.seek(-t.seekLarge)
	}
	return fmt.Errorf("command %s not supported for remote sessions", cmd)
}

func (t *SessionTarget) general(cmd jellyfin.GeneralCommandType) error {
	resp, err := t.c.api.SessionAPI.SendGeneralCommand(t.c.ctx, t.sessionID, cmd).Execute()
	if err != nil {
		return fmt.Errorf("send %s: %w (status: %s)", cmd, err, respStatus(resp))
	}
	return nil
}

func (t *SessionTarget) playstate(cmd jellyfin.PlaystateCommand, seekTicks *int64) error {
	req := t.c.api.SessionAPI.SendPlaystateCommand(t.c.ctx, t.sessionID, cmd)
	if seekTicks != nil {
		req = req.SeekPositionTicks(*seekTicks)
	}
	resp, err := req.Execute()
	if err != nil {
		return fmt.Errorf("send %s: %w (status: %s)", cmd, err, respStatus(resp))
	}
	return nil
}

// seek moves playback relative to the session's current position. Jellyfin
// only takes absolute seek targets, so the position is read back first.
func (t *SessionTarget) seek(deltaTicks int64) error {
	pos, err := t.position()
	if err != nil {
		return err
	}
	target := clampTicks(pos, deltaTicks)
	return t.playstate(jellyfin.PLAYSTATECOMMAND_SEEK, &target)
}

func (t *SessionTarget) position() (int64, error) {
	result, resp, err := t.c.api.SessionAPI.GetSessions(t.c.ctx).Execute()
	if err != nil {
		return 0, fmt.Errorf("read session state: %w (status: %s)", err, respStatus(resp))
	}
	for _, si := range result {
		if si.GetId() != t.sessionID {
			continue
		}
		state := si.GetPlayState()
		return state.GetPositionTicks(), nil
	}
	return 0, fmt.Errorf("session %s is gone", t.sessionID)
}

func clampTicks(pos, delta int64) int64 {
	if target := pos + delta; target > 0 {
		return target
	}
	return 0
}
