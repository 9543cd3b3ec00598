package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/toyz/relay/internal/config"
	"github.com/toyz/relay/internal/console"
	"go.uber.org/fx"
)

func main() {
	var (
		adapterFlag  = flag.String("adapter", "", "Web server adapter to use (echo, gin, or fiber)")
		portFlag     = flag.Int("port", 0, "Port to run the server on")
		manifestFlag = flag.String("manifest", "", "Route manifest file (defaults to the embedded demo routes)")
		routesFlag   = flag.Bool("routes", false, "Print the route table and exit")
		helpFlag     = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Relay demo server\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  PORT, RELAY_ADAPTER, RELAY_LOG_LEVEL, RELAY_LOG_FORMAT, RELAY_MANIFEST, RELAY_SHUTDOWN_TIMEOUT\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -adapter=gin -port=3000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -manifest=routes.yaml -routes\n", os.Args[0])
	}
	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Flags override the environment
	if *adapterFlag != "" {
		cfg.Adapter = *adapterFlag
	}
	if *portFlag != 0 {
		cfg.Port = *portFlag
	}
	if *manifestFlag != "" {
		cfg.Manifest = *manifestFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *routesFlag {
		table, err := loadRoutes(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		console.NewRouteLister(os.Stdout).List(table)
		return
	}

	app := fx.New(options(cfg, os.Stdout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start application: %v\n", err)
		os.Exit(1)
	}

	<-sigChan

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stop application gracefully: %v\n", err)
		os.Exit(1)
	}
}
