package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/migrations"
	"github.com/noah-isme/uni-schedule-api/pkg/config"
	"github.com/noah-isme/uni-schedule-api/pkg/database"
	"github.com/noah-isme/uni-schedule-api/pkg/logger"
	"github.com/noah-isme/uni-schedule-api/pkg/migrate"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "migration timeout")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-timeout 2m] up|down|status|version\n")
	}
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := migrate.New(db.DB, migrations.FS, ".", log)
	if err != nil {
		log.Fatal("failed to init migrator", zap.Error(err))
	}

	switch command {
	case "up":
		err = migrator.Up(ctx)
	case "down":
		err = migrator.Down(ctx)
	case "status":
		err = migrator.Status(ctx)
	case "version":
		var version int64
		version, err = migrator.Version(ctx)
		if err == nil {
			log.Info("schema version", zap.Int64("version", version))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("migration command failed", zap.String("command", command), zap.Error(err))
	}
}
