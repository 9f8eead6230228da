package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/config"
	"github.com/varkas/overlens/memread"
	"github.com/varkas/overlens/snapshot"
)

func main() {
	configPath := flag.String("config", "overlens.yaml", "path to the YAML config")
	bridgeAddr := flag.String("bridge", "", "acquisition bridge address (overrides config)")
	demo := flag.Bool("demo", false, "run against a built-in static scene instead of the bridge")
	fullscreen := flag.Bool("fullscreen", false, "start in borderless fullscreen")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *bridgeAddr != "" {
		cfg.BridgeAddr = *bridgeAddr
	}
	if *fullscreen {
		cfg.Fullscreen = true
	}

	layout := camera.DefaultLayout()
	if cfg.LayoutPath != "" {
		layout, err = camera.LoadLayout(cfg.LayoutPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	var reader memread.Reader
	var source snapshot.Source
	if *demo {
		reader = seedDemoReader(layout)
		source = demoScene()
	} else {
		client, err := memread.Dial(cfg.BridgeAddr + "/mem")
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		feed, err := snapshot.DialFeed(cfg.BridgeAddr+"/world", nil)
		if err != nil {
			log.Fatal(err)
		}
		defer feed.Close()
		reader = client
		source = feed
	}

	clipboardReady := true
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		clipboardReady = false
	}

	game, err := NewGame(*configPath, cfg, layout, reader, source, clipboardReady)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowTitle("overlens")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	opts := &ebiten.RunGameOptions{ScreenTransparent: true}
	if err := ebiten.RunGameWithOptions(game, opts); err != nil {
		log.Fatal(err)
	}
}
