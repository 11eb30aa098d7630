// Command migrate applies or rolls back the database schema.
//
//	migrate up          apply all pending migrations
//	migrate down        roll back the last migration
//	migrate to <n>      migrate to version n
//	migrate version     print the current version
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/blogify-api/internal/config"
	"github.com/blogify-api/internal/database"
	"github.com/blogify-api/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	path := flag.String("path", "", "migrations directory (defaults to MIGRATIONS_PATH)")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [-path dir] up|down|to <version>|version")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "reading .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	migrations := cfg.Database.MigrationsPath
	if *path != "" {
		migrations = *path
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = db.RunMigrations(migrations)
	case "down":
		err = db.MigrateDown(migrations)
	case "to":
		var version uint64
		version, err = strconv.ParseUint(flag.Arg(1), 10, 32)
		if err != nil {
			log.Fatal().Str("version", flag.Arg(1)).Msg("Version must be a non-negative integer")
		}
		err = db.MigrateToVersion(migrations, uint(version))
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = db.MigrationVersion(migrations)
		if err == nil {
			fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration command failed")
	}
}
