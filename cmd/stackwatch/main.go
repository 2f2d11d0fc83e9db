package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stackwatch/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	refreshSeconds := flag.Int("refresh", 0, "refresh interval in seconds (optional, defaults to 2s)")
	debug := flag.Bool("debug", false, "log daemon error detail to stackwatch-debug.log")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("stackwatch %s\n", version)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *refreshSeconds < 0 {
		fmt.Fprintf(os.Stderr, "stackwatch: -refresh must be greater than zero, got %d\n", *refreshSeconds)
		flag.Usage()
		return 2
	}

	opts := app.Options{
		ConfigPath: *configPath,
		Debug:      *debug,
		Version:    version,
	}
	if refresh := *refreshSeconds; refresh != 0 {
		opts.RefreshEvery = refresh
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "stackwatch: %v\n", err)
		return 1
	}
	return 0
}
