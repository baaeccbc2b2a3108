package player

import (
	"fmt"

	"github.com/depeter/sensestick/internal/remote"
)

// Do implements remote.Target, mapping stick commands onto mpv.
func (p *Player) Do(cmd remote.Command) error {
	switch cmd {
	case remote.PlayPause:
		return p.TogglePause()
	case remote.Stop:
		return p.Stop()
	case remote.SeekForward:
		return p.Seek(p.seekSmall)
	case remote.SeekBackward:
		return p.Seek(-p.seekSmall)
	case remote.SeekForwardLarge:
		return p.Seek(p.seekLarge)
	case remote.SeekBackwardLarge:
		return p.Seek(-p.seekLarge)
	case remote.VolumeUp:
		return p.AddVolume(5)
	case remote.VolumeDown:
		return p.AddVolume(-5)
	case remote.Mute:
		return p.ToggleMute()
	}
	return fmt.Errorf("command %s not supported by the local player", cmd)
}
