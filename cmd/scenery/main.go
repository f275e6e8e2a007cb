package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"scenery/internal/config"
	"scenery/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "scenery.toml", "path to the TOML configuration")
	scenePath := flag.String("scene", "", "scene file to open (overrides the configuration)")
	flag.Parse()

	defer closer.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if err := config.Apply(cfg); err != nil {
		closer.Fatalln(err)
	}
	logging.SetLogger(logging.New(cfg.Log.Level, os.Stderr))

	if err := glfw.Init(); err != nil {
		closer.Fatalln(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		closer.Fatalln(err)
	}

	app, err := NewApp(window, cfg)
	if err != nil {
		closer.Fatalln(err)
	}
	defer app.Close()

	app.Run()
}
