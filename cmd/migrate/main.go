package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/prperemyshlev/api-marketplace/internal/config"
	"github.com/prperemyshlev/api-marketplace/pkg/database"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	postgres, err := database.NewPostgres(cfg.Postgres.DSN(), database.PoolOptions{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer postgres.Close()

	migrator, err := database.NewMigrator(postgres, cfg.Migrations.Path)
	if err != nil {
		log.Fatalf("Failed to initialize migrations: %v", err)
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "version":
	default:
		flag.Usage()
		log.Fatalf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Fatalf("Failed to read schema version: %v", err)
	}
	fmt.Printf("schema version %d (dirty=%t)\n", version, dirty)
}
