package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/depeter/sensestick"
	"github.com/depeter/sensestick/internal/config"
	"github.com/depeter/sensestick/internal/jellyfin"
	"github.com/depeter/sensestick/internal/player"
	"github.com/depeter/sensestick/internal/remote"
)

func main() {
	play := flag.String("play", "", "play a file or URL on the embedded player")
	cast := flag.Bool("cast", false, "steer a Jellyfin session instead of playing locally")
	session := flag.String("session", "", "session ID or device name to cast to")
	list := flag.Bool("list-sessions", false, "list controllable Jellyfin sessions and exit")
	device := flag.String("device", "", "event node to open instead of discovering the joystick")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch {
	case *list:
		err = listSessions(cfg)
	case *play != "":
		err = runPlayer(cfg, *device, *play)
	case *cast:
		err = runCast(cfg, *device, *session)
	default:
		fmt.Fprintln(os.Stderr, "nothing to do, pass -play, -cast or -list-sessions")
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("couchstick: %v", err)
	}
}

// openStick acquires the joystick, honoring the configured device pin and
// grab setting. The flag wins over the config file.
func openStick(cfg *config.Config, device string) (*sensestick.JoyStick, error) {
	if device == "" {
		device = cfg.Stick.Device
	}

	var (
		stick *sensestick.JoyStick
		err   error
	)
	if device != "" {
		stick, err = sensestick.OpenPath(device)
	} else {
		stick, err = sensestick.Open()
	}
	if err != nil {
		return nil, err
	}

	if cfg.Stick.Grab {
		if err := stick.Grab(); err != nil {
			stick.Close()
			return nil, fmt.Errorf("grab %s: %w", stick.Path(), err)
		}
	}
	return stick, nil
}

// newClient builds an authenticated Jellyfin client. A saved token is used
// as is; otherwise username plus the COUCHSTICK_PASSWORD environment
// variable log in once and the token is written back to the config file.
func newClient(cfg *config.Config) (*jellyfin.Client, error) {
	if cfg.Jellyfin.URL == "" {
		return nil, errors.New("jellyfin.url is not configured")
	}

	c := jellyfin.NewClient(cfg.Jellyfin.URL)
	if cfg.Jellyfin.Token != "" {
		c.SetToken(cfg.Jellyfin.Token, cfg.Jellyfin.UserID)
		return c, nil
	}

	pass := os.Getenv("COUCHSTICK_PASSWORD")
	if cfg.Jellyfin.Username == "" || pass == "" {
		return nil, errors.New("set jellyfin.token, or jellyfin.username plus COUCHSTICK_PASSWORD")
	}
	if err := c.Authenticate(cfg.Jellyfin.Username, pass); err != nil {
		return nil, err
	}

	cfg.Jellyfin.Token = c.Token()
	cfg.Jellyfin.UserID = c.UserID()
	if err := cfg.Save(); err != nil {
		log.Printf("Failed to save token: %v", err)
	}
	return c, nil
}

func listSessions(cfg *config.Config) error {
	c, err := newClient(cfg)
	if err != nil {
		return err
	}
	sessions, err := c.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no controllable sessions")
		return nil
	}
	for _, s := range sessions {
		line := fmt.Sprintf("%s  %s (%s)", s.ID, s.Device, s.Client)
		if s.NowPlaying != "" {
			line += "  playing " + s.NowPlaying
		}
		fmt.Println(line)
	}
	return nil
}

// runPlayer plays media on the embedded mpv player and steers it with the
// stick until playback ends or the stick goes away.
func runPlayer(cfg *config.Config, device, media string) error {
	stick, err := openStick(cfg, device)
	if err != nil {
		return err
	}

	p, err := player.New(cfg)
	if err != nil {
		stick.Close()
		return err
	}
	defer p.Destroy()

	done := make(chan struct{})
	p.OnPlaybackEnd = func() { close(done) }

	if err := p.LoadFile(media); err != nil {
		stick.Close()
		return err
	}

	bindings := remote.PlayerBindings()
	if err := bindings.Apply(cfg.Bindings.Press, cfg.Bindings.Hold); err != nil {
		stick.Close()
		return err
	}

	stream := stick.Stream()
	defer stream.Close()

	go remote.Run(stream.Events(), bindings, p)

	select {
	case <-done:
		log.Printf("Playback finished")
		return nil
	case err, ok := <-stream.Errors():
		if ok {
			return err
		}
		return nil
	}
}

// runCast forwards stick commands to a remote Jellyfin session.
func runCast(cfg *config.Config, device, sessionRef string) error {
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	if sessionRef == "" {
		sessionRef = cfg.Jellyfin.Session
	}
	s, err := c.FindSession(sessionRef)
	if err != nil {
		return err
	}
	log.Printf("Casting to %s (%s)", s.Device, s.Client)

	stick, err := openStick(cfg, device)
	if err != nil {
		return err
	}

	bindings := remote.CastBindings()
	if err := bindings.Apply(cfg.Bindings.Press, cfg.Bindings.Hold); err != nil {
		stick.Close()
		return err
	}

	stream := stick.Stream()
	defer stream.Close()

	remote.Run(stream.Events(), bindings, c.Remote(s.ID, cfg.Playback.SeekSmall, cfg.Playback.SeekLarge))
	if err, ok := <-stream.Errors(); ok {
		return err
	}
	return nil
}
