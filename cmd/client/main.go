package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/artstore/internal/client/cli"
	"github.com/dmitrijs2005/artstore/internal/client/config"
	"github.com/dmitrijs2005/artstore/internal/filex"
	"github.com/dmitrijs2005/artstore/internal/logging"
)

const logFileName = "artstore.log"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.NewZapLogger(cfg.Debug, filepath.Join(dir, logFileName))
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
