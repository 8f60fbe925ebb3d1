package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/sevlyar/go-daemon"
	log "github.com/sirupsen/logrus"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yamlsrc "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/mahyarmirrashed/extd/internal/config"
	"github.com/mahyarmirrashed/extd/internal/sorter"
	"github.com/mahyarmirrashed/extd/internal/utils"
	"github.com/mahyarmirrashed/extd/internal/watcher"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	_ = godotenv.Load()

	var configPath string
	configFile := altsrc.NewStringPtrSourcer(&configPath)

	app := &cli.Command{
		Name:    "extd",
		Usage:   "Extension Sorting Daemon",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("EXTD_CONFIG"),
				Value:       ".extd.yaml",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:    "root",
				Usage:   "root directory to sort",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_ROOT"), yamlsrc.YAML("root", configFile)),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "logging level: debug, info, warn, error",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_LOG_LEVEL"), yamlsrc.YAML("log_level", configFile)),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "log file path (default: stderr)",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_LOG_FILE"), yamlsrc.YAML("log_file", configFile)),
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "dry run mode",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_DRY_RUN"), yamlsrc.YAML("dry_run", configFile)),
			},
			&cli.BoolFlag{
				Name:    "watch",
				Usage:   "keep sorting new files after the initial pass",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_WATCH"), yamlsrc.YAML("watch", configFile)),
			},
			&cli.BoolFlag{
				Name:    "daemonize",
				Usage:   "run watch mode as daemon",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_DAEMONIZE"), yamlsrc.YAML("daemonize", configFile)),
			},
			&cli.BoolFlag{
				Name:    "notifications",
				Usage:   "send desktop notifications",
				Sources: cli.NewValueSourceChain(cli.EnvVar("EXTD_NOTIFICATIONS"), yamlsrc.YAML("notifications", configFile)),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "glob patterns to exclude (repeat or comma-separated)",
				Sources: cli.EnvVars("EXTD_EXCLUDE"),
			},
			&cli.DurationFlag{
				Name:    "delay",
				Usage:   "settle delay before processing watched files",
				Sources: cli.EnvVars("EXTD_DELAY"),
				Value:   0,
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	var cfg *config.Config
	configPath := cmd.String("config")

	// Only load config if the file exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else {
		cfg = config.Default()
	}

	// Override config with flags if set
	if cmd.IsSet("root") {
		cfg.Root = cmd.String("root")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("dry-run") {
		cfg.DryRun = cmd.Bool("dry-run")
	}
	if cmd.IsSet("watch") {
		cfg.Watch = cmd.Bool("watch")
	}
	if cmd.IsSet("daemonize") {
		cfg.Daemonize = cmd.Bool("daemonize")
	}
	if cmd.IsSet("notifications") {
		cfg.Notifications = cmd.Bool("notifications")
	}
	if cmd.IsSet("exclude") {
		exclude := cmd.StringSlice("exclude")
		var merged []string
		for _, e := range exclude {
			merged = append(merged, strings.Split(e, ",")...)
		}
		cfg.Exclude = merged
	}
	if cmd.IsSet("delay") {
		cfg.Delay = cmd.Duration("delay")
	}

	// Set log level from config
	switch cfg.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	cfg.Root = utils.ExpandTilde(cfg.Root)

	// Abort before any mutation if the configuration is unusable.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Daemon mode only makes sense when watching.
	if cfg.Daemonize {
		cfg.Watch = true

		daemonCtx := &daemon.Context{
			PidFileName: "extd.pid",
			PidFilePerm: 0644,
			LogFileName: "extd.log",
			LogFilePerm: 0640,
			WorkDir:     "./",
			Umask:       027,
			Args:        []string{"[extd-daemon]"},
		}

		d, err := daemonCtx.Reborn()
		if err != nil {
			log.Fatalf("Unable to run: %s", err)
		}
		if d != nil {
			return nil // Parent process exits
		}
		defer daemonCtx.Release()
		log.Info("Daemon started")
	}

	s, err := sorter.New(cfg, log.StandardLogger())
	if err != nil {
		log.Fatalf("Failed to build sorter: %v", err)
	}

	report, err := s.Run()
	if err != nil {
		log.Fatalf("Sort failed: %v", err)
	}

	if !cfg.Daemonize {
		fmt.Println(renderReport(report))
	}

	if !cfg.Watch {
		return nil
	}

	// Signal handling for graceful shutdown
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-signals
		log.Infof("Received signal: %s, shutting down...", sig)

		if cfg.Daemonize {
			if err := os.Remove("extd.pid"); err != nil && !os.IsNotExist(err) {
				log.Warnf("Error removing PID file: %v", err)
			}
		}

		cancel()
	}()

	if err := watcher.Watch(watchCtx, s, cfg.Delay); err != nil && err != context.Canceled {
		return err
	}

	log.Info("Cleanup complete. Exiting.")
	return nil
}

// renderReport formats the pass summary as a table for stdout.
func renderReport(report *sorter.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Moved", "Skipped", "Errored", "Elapsed"})
	tw.AppendRow(table.Row{report.Moved, report.Skipped, report.Errored, report.Elapsed.Round(time.Millisecond)})
	return tw.Render()
}
