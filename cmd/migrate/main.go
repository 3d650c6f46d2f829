package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/gobrick/brickpool-backend/pkg/config"
	"github.com/gobrick/brickpool-backend/pkg/logger"
	"github.com/gobrick/brickpool-backend/pkg/migrate"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create")
	dir := flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name := flag.String("name", "", "migration name (for create)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
		"dir": *dir,
	})

	if *cmd == "create" {
		if *name == "" {
			fmt.Fprintln(os.Stderr, "missing -name for create")
			os.Exit(1)
		}
		if err := migrate.CreateSQLMigration(*dir, *name); err != nil {
			logg.Error(ctx, "failed to create migration", err)
			os.Exit(1)
		}
		logg.Info(ctx, "migration scaffolded")
		return
	}

	sqlDB, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		logg.Error(ctx, "failed to open database", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logg.Error(ctx, "failed to reach database", err)
		os.Exit(1)
	}

	if err := migrate.Run(ctx, sqlDB, *dir, *cmd, flag.Args()...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migration complete")
}
