package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/depeter/sensestick"
)

func main() {
	device := flag.String("device", "", "event node to open instead of discovering the joystick")
	blocking := flag.Bool("blocking", false, "use blocking batch reads instead of the stream")
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

	log.Printf("Reading %q on %s", stick.Name(), stick.Path())

	if *blocking {
		runBlocking(stick)
		return
	}
	runStream(stick)
}

func openStick(device string) (*sensestick.JoyStick, error) {
	if device != "" {
		return sensestick.OpenPath(device)
	}
	return sensestick.Open()
}

func runBlocking(stick *sensestick.JoyStick) {
	for {
		events, err := stick.Events()
		if err != nil {
			log.Fatalf("Failed to read events: %v", err)
		}
		for _, ev := range events {
			printEvent(ev)
		}
	}
}

func runStream(stick *sensestick.JoyStick) {
	stream := stick.Stream()
	defer stream.Close()

	for ev := range stream.Events() {
		printEvent(ev)
	}
	if err, ok := <-stream.Errors(); ok {
		log.Fatalf("Stream failed: %v", err)
	}
}

func printEvent(ev sensestick.Event) {
	fmt.Printf("%s  %-5s %s\n", ev.Time().Format("15:04:05.000000"), ev.Direction, ev.Action)
}
