// OttoBrew is a terminal coffee machine.
//
// Usage:
//
//	ottobrew [-config ottobrew.yaml] [-verbose] [-quiet] [-no-sound] [-ephemeral]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ottobrew/internal/config"
	"github.com/hammamikhairi/ottobrew/internal/conversation"
	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/recipe"
	"github.com/hammamikhairi/ottobrew/internal/sound"
	"github.com/hammamikhairi/ottobrew/internal/storage"
	"github.com/hammamikhairi/ottobrew/internal/timer"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "ottobrew.yaml", "YAML config file (optional)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console); overrides the config")
	noSound := flag.Bool("no-sound", false, "disable sound cues")
	ephemeral := flag.Bool("ephemeral", false, "keep ingredient levels in memory only")
	power := flag.Float64("power", 0, "heater power in watts; overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *noSound {
		cfg.Audio.Enabled = false
	}
	if *ephemeral {
		cfg.Storage.Ephemeral = true
	}
	if *power > 0 {
		cfg.Machine.PowerWatts = *power
	}

	// Configure logger.
	logLevel, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using normal)\n", err)
	}
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the panel stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.Log.File != "" && cfg.Log.File != "stderr" {
		dir := filepath.Dir(cfg.Log.File)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Log.File, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// The audio backend logs through the standard package; keep it off
	// the terminal as well.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	minBrew, maxBrew, err := cfg.BrewBounds()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Set up context, cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	var store domain.SnapshotStore
	if cfg.Storage.Ephemeral {
		store = storage.NewMemoryStore(log.With("storage"))
		log.Info("ephemeral mode: levels will not survive a restart")
	} else {
		fs := storage.NewFileStore(cfg.Storage.SnapshotPath, log.With("storage"))
		log.Info("levels persisted to %s", fs.Path())
		store = fs
	}

	recipes := recipe.NewCatalog(log.With("recipe"))
	eng := engine.New(recipes, store, log.With("engine"),
		engine.WithPower(cfg.Machine.PowerWatts),
		engine.WithBrewBounds(minBrew, maxBrew),
		engine.WithRefillStep(cfg.Refill.Step),
	)

	var player domain.SoundPlayer = sound.NewNoOp(log.With("sound"))
	if cfg.Audio.Enabled {
		p, err := sound.NewPlayer(cfg.Audio.Volume, log.With("sound"))
		if err != nil {
			log.Error("audio player init failed, sound disabled: %v", err)
		} else {
			player = p
		}
	}

	ui := display.NewUI()
	notifier := conversation.NewAlertNotifier(ui, player, log.With("notify"))
	parser := conversation.NewKeywordParser(recipes, log.With("parser"))
	progress := timer.NewProgress(ui.SetProgress, log.With("progress"))
	defer progress.Stop()

	app := newApp(eng, parser, notifier, player, progress, ui, log.With("app"))
	eng.Subscribe(app)

	if _, err := eng.Restore(ctx); err != nil {
		log.Warn("keeping default levels: %v", err)
		ui.SetInventory(eng.Inventory())
	}
	app.selectDefault(ctx)

	fmt.Println(display.RenderBanner("Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	eng.CancelBrew(context.Background())
	player.Stop()
}
