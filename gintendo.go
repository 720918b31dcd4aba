package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/oldwire/nesgo/console"
	"github.com/oldwire/nesgo/mappers"
	"github.com/oldwire/nesgo/nesrom"
)

var (
	romFile  = flag.String("nes_rom", "", "Path to NES ROM to run.")
	scale    = flag.Int("scale", 2, "Window scale factor (ignored with -headless).")
	headless = flag.Bool("headless", false, "Run the emulation loop without opening a window.")
)

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("Couldn't Get() mapper: %v", err)
	}

	nes := console.New(m)

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- nes.Run(stop)
	}()

	if *headless {
		runHeadless(stop, done)
		return
	}

	nes.SetScale(*scale)
	if err := ebiten.RunGame(nes); err != nil {
		log.Fatal(err)
	}

	close(stop)
	os.Exit(0)
}

// runHeadless blocks until either the emulation core halts on its own (a
// fault, or Run returning) or the process receives an interrupt, at which
// point it asks Run to stop and waits for it to exit.
func runHeadless(stop chan struct{}, done chan error) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			log.Fatalf("emulation halted: %v", err)
		}
	case <-sig:
		close(stop)
		<-done
	}
}
