package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/solartools/clearsky/internal/archive"
	"github.com/solartools/clearsky/internal/log"
	"github.com/solartools/clearsky/internal/server"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "Listen address for the irradiance API")
		archivePath = flag.String("archive", "", "Optional SQLite profile archive to serve")
		logFile     = flag.String("logfile", "", "Optional log file with rotation")
		debug       = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if err := log.InitWithFile(*debug, *logFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var store *archive.Store
	if *archivePath != "" {
		var err error
		store, err = archive.Open(*archivePath)
		if err != nil {
			log.Fatalf("Failed to open profile archive: %v", err)
		}
		defer store.Close()
		log.Infof("serving profile archive from %s", *archivePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Addr: *addr}, log.GetSugaredLogger(), store)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
