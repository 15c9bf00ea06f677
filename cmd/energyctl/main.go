// Command energyctl runs maintenance and inspection tasks against the
// building energy store.
//
// Usage:
//
//	energyctl migrate                     apply the schema and fill missing glazing defaults
//	energyctl seed [-file cities.yaml]    insert the reference cities, or upsert a city table
//	energyctl profile -city Mumbai -season Winter (-id <uuid> | -file design.yaml)
//	energyctl analyze -city Mumbai [-ids id1,id2]
//	energyctl events [-group energyctl] [-n 10]
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/buildsense/energy-backend/config"
	"github.com/buildsense/energy-backend/internal/logging"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error
}

var commands = []command{
	{"migrate", "apply the schema and fill missing glazing defaults", runMigrate},
	{"seed", "insert the reference cities that are absent", runSeed},
	{"profile", "plot the hourly energy profile of a design", runProfile},
	{"analyze", "rank designs in one city", runAnalyze},
	{"events", "tail design change events from Kafka", runEvents},
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd, ok := lookup(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, cfg, os.Args[2:], os.Stdout); err != nil {
		logger.Error("command failed", zap.String("command", cmd.name), zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: energyctl <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}
