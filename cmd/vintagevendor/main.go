// Vintage Vendor is a terminal street-stall game: take orders, serve
// dishes, and grow the stall day by day.
//
// Usage:
//
//	vintagevendor [-config vintagevendor.yaml] [-verbose] [-quiet] [-store sqlite|file|memory] [-db path]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/vintagevendor/internal/config"
	"github.com/hammamikhairi/vintagevendor/internal/conversation"
	"github.com/hammamikhairi/vintagevendor/internal/display"
	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/engine"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
	"github.com/hammamikhairi/vintagevendor/internal/recipe"
	"github.com/hammamikhairi/vintagevendor/internal/storage"
	"github.com/hammamikhairi/vintagevendor/internal/timer"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	configPath := flag.String("config", config.DefaultPath, "YAML config file (optional)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	store := flag.String("store", "", "save backend: sqlite, file or memory")
	dbPath := flag.String("db", "", "path of the save database or file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()

	// Flags win over file and environment.
	if *verbose {
		cfg.Log.Level = logger.LevelVerbose.String()
	}
	if *quiet {
		cfg.Log.Level = logger.LevelOff.String()
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *store != "" {
		cfg.Storage.Backend = *store
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	// The sqlite default path is no place for a JSON save.
	if cfg.Storage.Backend == config.StoreFile && cfg.Storage.Path == config.Default().Storage.Path {
		cfg.Storage.Path = ""
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level, _ := logger.ParseLevel(cfg.Log.Level)
	logOut, closeLog := openLogOutput(cfg.Log.File)
	defer closeLog()
	log := logger.New(level, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progress, closeStore, err := openStore(cfg, log.Named("storage"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	catalog := recipe.NewCatalog(log.Named("recipe"))
	opts := []engine.Option{
		engine.WithTuning(cfg.Tuning),
		engine.WithPlayerName(cfg.Player.Name),
	}
	if cfg.Seed != nil {
		opts = append(opts, engine.WithSeed(*cfg.Seed))
	}
	eng := engine.New(catalog, progress, log.Named("engine"), opts...)

	if err := eng.Load(ctx); err != nil {
		if !errors.Is(err, domain.ErrCorruptRecord) && !errors.Is(err, domain.ErrUnsupportedVersion) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		log.Warn("save unreadable, starting fresh: %v", err)
	}
	if d := cfg.Player.Difficulty; d != "" {
		eng.UpdateSettings(domain.SettingsPatch{Difficulty: &d})
	}
	eng.RefreshEnergy()

	ui := display.NewUI(eng)
	notifier := conversation.NewCLINotifier(log.Named("notify"), ui.Printf)
	parser := conversation.NewKeywordParser(log.Named("parser"))

	supervisor := timer.New(eng, notifier, log.Named("timer"),
		timer.WithSpawnInterval(cfg.Tuning.SpawnInterval),
		timer.WithWatcher(),
	)
	supervisor.Start(ctx)

	app := &cliApp{
		engine:   eng,
		catalog:  catalog,
		menu:     catalog,
		store:    progress,
		parser:   parser,
		notifier: notifier,
		log:      log.Named("app"),
		out:      ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Gõ 'help' để xem lệnh, 'quit' để thoát."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	supervisor.Stop()

	if err := eng.Save(context.Background()); err != nil {
		log.Error("saving on exit: %v", err)
		fmt.Fprintf(os.Stderr, "warning: progress not saved: %v\n", err)
	}
}

// openLogOutput sends logs to a file so the UI stays clean. "stderr" or
// an empty path logs to the console.
func openLogOutput(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

// openStore builds the configured progress store.
func openStore(cfg *config.Config, log *logger.Logger) (domain.ProgressStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.StoreMemory:
		return storage.NewMemoryStore(log), func() {}, nil
	case config.StoreFile:
		return storage.NewFileStore(cfg.Storage.Path, log), func() {}, nil
	default:
		db, err := storage.OpenSQLite(cfg.Storage.Path, log)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
}
