// Package main plays a batch of self-play games configured from the
// environment and logs the per-seat results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SabbeRubbish/azul-ai/service/internal/config"
	"github.com/SabbeRubbish/azul-ai/service/internal/selfplay"
	log "github.com/sirupsen/logrus"
)

// usage prints how to run the command to the flagset's output.
func usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Plays policy-vs-policy games\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(config.EnvVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

func main() {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	fs.Usage = func() {
		usage(fs)
	}
	envFile := fs.String("env-file", ".env", "Optional dotenv file; the process environment overrides it.")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*envFile, os.LookupEnv)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithFields(log.Fields{
		"games":      cfg.Games,
		"workers":    cfg.Workers,
		"players":    cfg.Players,
		"difficulty": cfg.Difficulty.String(),
		"seed":       cfg.Seed,
	}).Info("Starting self-play")
	if _, err := selfplay.Run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Self-play stopped")
	}
}
