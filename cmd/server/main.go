package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/labsite/internal/logging"
	"github.com/dmitrijs2005/labsite/internal/server"
	"github.com/dmitrijs2005/labsite/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
