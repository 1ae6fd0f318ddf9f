package main

import (
	"context"
	"database/sql"
	"flag"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/labsite/internal/diagnostics"
	"github.com/dmitrijs2005/labsite/internal/flagx"
	"github.com/dmitrijs2005/labsite/internal/server/config"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
)

func main() {

	ctx := context.Background()
	args := os.Args[1:]

	cfg, err := config.LoadConfig(args)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var baseURL string
	fs := flag.NewFlagSet("diagnose", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&baseURL, "url", diagnostics.BaseURLFromAddr(cfg.HTTPAddr), "server base URL")
	_ = fs.Parse(flagx.FilterArgs(args, []string{"-url", "--url"}))

	open := func(ctx context.Context) (*sql.DB, error) {
		return repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	}

	runner := diagnostics.NewRunner(os.Stdout, open, repomanager.NewPostgresRepositoryManager(), nil, diagnostics.Options{
		BaseURL:   baseURL,
		StaticDir: cfg.StaticDir,
	})

	if !runner.Run(ctx).OK() {
		os.Exit(1)
	}

}
