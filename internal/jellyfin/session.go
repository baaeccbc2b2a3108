package jellyfin

import (
	"fmt"
	"strings"

	jellyfin "github.com/sj14/jellyfin-go/api"
)

// Session is a remote-controllable Jellyfin client session.
type Session struct {
	ID         string
	Device     string
	Client     string
	NowPlaying string
}

// Sessions lists the server sessions that accept remote control.
func (c *Client) Sessions() ([]Session, error) {
	result, resp, err := c.api.SessionAPI.GetSessions(c.ctx).Execute()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w (status: %s)", err, respStatus(resp))
	}

	sessions := make([]Session, 0, len(result))
	for _, si := range result {
		if !si.GetSupportsRemoteControl() {
			continue
		}
		s := Session{
			ID:     si.GetId(),
			Device: si.GetDeviceName(),
			Client: si.GetClient(),
		}
		if item, ok := si.GetNowPlayingItemOk(); ok && item != nil {
			s.NowPlaying = item.GetName()
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// FindSession resolves a session reference: a session ID (or ID prefix) or a
// device name, matched case-insensitively. An empty reference picks the sole
// controllable session.
func (c *Client) FindSession(ref string) (Session, error) {
	sessions, err := c.Sessions()
	if err != nil {
		return Session{}, err
	}

	if ref == "" {
		switch len(sessions) {
		case 1:
			return sessions[0], nil
		case 0:
			return Session{}, fmt.Errorf("no controllable sessions on %s", c.serverURL)
		}
		return Session{}, fmt.Errorf("%d controllable sessions, pick one", len(sessions))
	}

	for _, s := range sessions {
		if s.ID == ref || strings.HasPrefix(s.ID, ref) || strings.EqualFold(s.Device, ref) {
			return s, nil
		}
	}
	return Session{}, fmt.Errorf("no session matches %q", ref)
}
