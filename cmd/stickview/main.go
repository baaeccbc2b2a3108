package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/sensestick"
	"github.com/depeter/sensestick/assets/icon"
)

const (
	screenW = 240
	screenH = 240
	padSize = 52
	padGap  = 62
)

var (
	bgColor    = color.RGBA{R: 0x12, G: 0x14, B: 0x12, A: 0xFF}
	idleColor  = color.RGBA{R: 0x2A, G: 0x2E, B: 0x2A, A: 0xFF}
	pressColor = color.RGBA{R: 0x66, G: 0xBB, B: 0x6A, A: 0xFF}
	holdColor  = color.RGBA{R: 0xFF, G: 0xB7, B: 0x4D, A: 0xFF}
)

// pads lays out the four direction cells plus the center cap.
var pads = map[sensestick.Direction][2]float32{
	sensestick.Up:    {screenW / 2, screenH/2 - padGap},
	sensestick.Down:  {screenW / 2, screenH/2 + padGap},
	sensestick.Left:  {screenW/2 - padGap, screenH / 2},
	sensestick.Right: {screenW/2 + padGap, screenH / 2},
	sensestick.Enter: {screenW / 2, screenH / 2},
}

// viewer lights up the pad cells as stick events arrive.
type viewer struct {
	stream *sensestick.Stream
	state  map[sensestick.Direction]sensestick.Action
	last   string
}

func newViewer(stream *sensestick.Stream) *viewer {
	return &viewer{
		stream: stream,
		state:  make(map[sensestick.Direction]sensestick.Action),
	}
}

func (v *viewer) Update() error {
	for {
		select {
		case ev, ok := <-v.stream.Events():
			if !ok {
				if err, ok := <-v.stream.Errors(); ok {
					return err
				}
				return ebiten.Termination
			}
			v.state[ev.Direction] = ev.Action
			v.last = ev.String()
		default:
			return nil
		}
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	for dir, pos := range pads {
		clr := idleColor
		switch v.state[dir] {
		case sensestick.Press:
			clr = pressColor
		case sensestick.Hold:
			clr = holdColor
		}
		if dir == sensestick.Enter {
			vector.DrawFilledCircle(screen, pos[0], pos[1], padSize/2-6, clr, true)
			continue
		}
		vector.DrawFilledRect(screen, pos[0]-padSize/2, pos[1]-padSize/2, padSize, padSize, clr, false)
	}

	ebitenutil.DebugPrintAt(screen, v.last, 8, screenH-18)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	device := flag.String("device", "", "event node to open instead of discovering the joystick")
	grab := flag.Bool("grab", false, "take the exclusive kernel grab while running")
	flag.Parse()

	stick, err := openStick(*device)
	if err != nil {
		log.Fatalf("Failed to open joystick: %v", err)
	}
	if *grab {
		if err := stick.Grab(); err != nil {
			log.Fatalf("Failed to grab %s: %v", stick.Path(), err)
		}
	}

	stream := stick.Stream()
	defer stream.Close()

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("Sense HAT Joystick")
	ebiten.SetWindowIcon(icon.Generate())

	if err := ebiten.RunGame(newViewer(stream)); err != nil {
		log.Fatalf("Joystick stream failed: %v", err)
	}
}

func openStick(device string) (*sensestick.JoyStick, error) {
	if device != "" {
		return sensestick.OpenPath(device)
	}
	return sensestick.Open()
}
