package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/shapesplash/tuning"
)

func main() {
	windowed := flag.Bool("windowed", false, "run in a window instead of fullscreen")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	tuningPath := flag.String("tuning", "", "tuning yaml to layer over the defaults (hot-reloaded)")
	attractPath := flag.String("attract", "", "attract-mode tengo script (hot-reloaded)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	tun := tuning.Default()
	if *tuningPath != "" {
		t, err := tuning.Load(*tuningPath)
		if err != nil {
			log.Printf("tuning load failed, using defaults: %v", err)
		}
		tun = t
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("shapesplash")
	if !*windowed {
		ebiten.SetFullscreen(true)
	}

	// Hide the native OS cursor; we draw a soft dot instead so small hands
	// can still find it.
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	initClipboard()

	game, err := NewGame(tun, *tuningPath, *attractPath, *seed, w, h)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
