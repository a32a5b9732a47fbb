// Command pathfx renders one frame of a pathfx scene to a PNG.
//
// Usage:
//
//	pathfx -config scene.toml -o out.png [-progress p] [-phase f] [-time RFC3339] [-watch] [-v]
//
// The scene file is described in package config. With -watch the command
// keeps running and renders again whenever the scene file changes.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/pathfx"
	"github.com/gogpu/pathfx/config"
)

func main() {
	var (
		scenePath = flag.String("config", "scene.toml", "scene file")
		output    = flag.String("o", "pathfx.png", "output file")
		progress  = flag.Float64("progress", -1, "override the drawn fraction of every layer (0..1)")
		phase     = flag.Float64("phase", 0, "added to every dash and stamp phase")
		at        = flag.String("time", "", "clock reading as RFC3339 (default: scene time or now)")
		watch     = flag.Bool("watch", false, "render again when the scene file changes")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if *verbose {
		pathfx.SetLogger(logger)
	}

	f := frame{phase: *phase, progress: -1}
	if *progress >= 0 {
		if *progress > 1 {
			fatal(fmt.Errorf("progress %v out of range: %w", *progress, pathfx.ErrInvalidParameter))
		}
		f.progress = *progress
	}
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fatal(fmt.Errorf("time %q: %w", *at, err))
		}
		f.at = t
	}

	if err := renderFile(*scenePath, *output, f); err != nil {
		if !*watch {
			fatal(err)
		}
		slog.Error("render failed", "config", *scenePath, "err", err)
	}
	if *watch {
		if err := watchFile(*scenePath, *output, f); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}

// renderFile loads the scene at scenePath and writes one frame to output.
func renderFile(scenePath, output string, f frame) error {
	scene, err := config.Load(scenePath)
	if err != nil {
		return err
	}
	start := time.Now()
	img, err := render(scene, f)
	if err != nil {
		return err
	}
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	slog.Info("rendered", "output", output, "width", scene.Width, "height", scene.Height,
		"layers", len(scene.Layers), "elapsed", time.Since(start))
	return nil
}

// watchFile re-renders whenever the scene file is written or replaced.
// Editors often save by renaming a new file over the old one, so the
// directory is watched rather than the file.
func watchFile(scenePath, output string, f frame) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(scenePath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	slog.Info("watching", "config", abs)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("scene changed", "op", event.Op.String())
			if err := renderFile(scenePath, output, f); err != nil {
				slog.Error("render failed", "config", scenePath, "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("scene watcher error", "err", err)
		}
	}
}
