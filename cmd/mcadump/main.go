// Command mcadump scans a world directory for region files and writes a journeymap
// waypoint file for every structure start it recognizes.
//
// Usage:
//
//	mcadump [-out json] [-config mcadump.yaml] [-dimension 0] [-strict] [-verbose] <mcapath>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/arloliu/anvil/internal/structure"
)

func main() {
	outDir := flag.String("out", "", "Directory for waypoint and dump files (default from config, or json)")
	configPath := flag.String("config", "", "Optional YAML file with structure rules")
	dimension := flag.Int("dimension", 0, "Waypoint dimension id for every structure, overrides the config")
	strict := flag.Bool("strict", false, "Abort on the first unreadable region or chunk")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <mcapath>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := structure.DefaultConfig()
	if *configPath != "" {
		loaded, err := structure.LoadConfig(*configPath)
		if err != nil {
			logger.Error("loading config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "dimension" {
			cfg.OverrideDimensions([]int{*dimension})
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), *strict, logger); err != nil {
		logger.Error("scan failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *structure.Config, root string, strict bool, logger *slog.Logger) error {
	sink, err := structure.NewDirSink(cfg.OutputDir)
	if err != nil {
		return err
	}

	scanner, err := structure.NewScanner(cfg, sink,
		structure.WithLogger(logger),
		structure.WithStrict(strict),
	)
	if err != nil {
		return err
	}

	stats, err := scanner.ScanDir(ctx, root)
	logger.Info("scan finished",
		"files", stats.Files,
		"chunks", stats.Chunks,
		"starts", stats.Starts,
		"waypoints", stats.Waypoints,
		"dumps", stats.Dumps,
		"errors", stats.Errors,
	)

	return err
}
