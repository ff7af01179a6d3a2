// Command anaglyph renders a box scene as a red/cyan anaglyph.
//
// Usage:
//
//	anaglyph [-config demo.toml] [-watch]
//
// With -watch the config file is reloaded whenever it changes; stereo, camera,
// scene and clear color edits apply to the running demo.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-anaglyph/engine"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/config"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/status"
	"github.com/Carmen-Shannon/oxy-anaglyph/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults apply when empty)")
	watch := flag.Bool("watch", false, "reload the config file when it changes")
	software := flag.Bool("software", false, "force the software fallback adapter")
	flag.Parse()

	if err := run(*configPath, *watch, *software); err != nil {
		fmt.Fprintf(os.Stderr, "anaglyph: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, watch, software bool) error {
	// ── Config ──────────────────────────────────────────────────────────
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	} else if watch {
		return fmt.Errorf("-watch requires -config")
	}

	presentMode, err := renderer.ParsePresentMode(cfg.Render.PresentMode)
	if err != nil {
		return err
	}
	msaa, err := renderer.ParseMSAA(cfg.Render.MSAA)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(software),
		renderer.WithInstanceCapacity(cfg.Render.InstanceCapacity),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Engine ──────────────────────────────────────────────────────────
	options := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithConfig(cfg),
		engine.WithReporter(status.NewReporter(os.Stdout)),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithInterval(time.Duration(cfg.Profiler.IntervalMS) * time.Millisecond),
		)),
	}
	if watch {
		watcher, err := config.Watch(configPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		options = append(options, engine.WithConfigSource(watcher))
		log.Printf("[Config] watching %s", configPath)
	}

	eng, err := engine.NewEngine(options...)
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.Run()
	return nil
}
