package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/config"
)

func main() {
	config.Load()

	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		log.Fatal("usage: migrate <up|down|version>")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL not configured")
	}

	source := config.Get("MIGRATIONS_PATH", "file://migrations")

	m, err := migrate.New(source, dsn)
	if err != nil {
		log.Fatalf("❌ Could not initialize migrations: %v", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("✅ No pending migrations")
			return
		}
		if err != nil {
			log.Fatalf("❌ Migration up failed: %v", err)
		}
		log.Println("✅ Migrations applied")

	case "down":
		err = m.Steps(-1)
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("✅ Nothing to roll back")
			return
		}
		if err != nil {
			log.Fatalf("❌ Migration down failed: %v", err)
		}
		log.Println("✅ Migration rolled back")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("No migrations applied yet")
			return
		}
		if err != nil {
			log.Fatalf("❌ Could not read version: %v", err)
		}
		log.Printf("Current version: %d (dirty=%v)", version, dirty)

	default:
		log.Fatalf("❌ Unknown command: %s", args[0])
	}
}
