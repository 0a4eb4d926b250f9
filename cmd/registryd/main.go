package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	registrydcmd "github.com/thornvale/menagerie/internal/cmd/registryd"
	"github.com/thornvale/menagerie/internal/platform/config"
)

func main() {
	cfg, err := registrydcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[REGISTRY] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := registrydcmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to bootstrap: %v", err)
	}
}
