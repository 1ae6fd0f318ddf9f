package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/labsite/internal/admincli"
	"github.com/dmitrijs2005/labsite/internal/server/config"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/labsite/internal/server/services"
)

var (
	openDB     = repomanager.OpenDB
	newManager = repomanager.NewPostgresRepositoryManager
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Getenv, os.Stdin, os.Stdout))
}

// run returns the process exit code.
func run(ctx context.Context, args []string, getenv func(string) string, in io.Reader, out io.Writer) int {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	opts, err := admincli.ParseOptions(args, getenv)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	fmt.Fprintln(out, "Connecting to database...")
	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer func() {
		db.Close()
		fmt.Fprintln(out, "Connection closed.")
	}()

	rm := newManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Printf("migrations: %v", err)
		return 1
	}
	fmt.Fprintln(out, "Connected to database")

	accounts := services.NewAccountService(db, rm, nil)
	if err := admincli.NewApp(in, out, accounts).Run(ctx, opts); err != nil {
		return 1
	}
	return 0
}
