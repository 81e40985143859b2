package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/joho/godotenv"

	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/database"
)

var resettable = []string{
	"users", "vendors", "categories", "services", "packages",
	"bookings", "sessions", "otp", "casbin_rule",
}

func main() {
	envFile := flag.String("env", ".env", "env file holding DATABASE_URL")
	table := flag.String("table", "", "table to truncate")
	down := flag.Bool("down", false, "roll back the most recent migration instead of truncating")
	flag.Parse()

	stmt, err := plan(*table, *down)
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	if err := godotenv.Load(*envFile); err != nil {
		log.Fatalf("failed to read %s: %v", *envFile, err)
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := database.Open(dsn, false)
	if err != nil {
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if *down {
		if err := database.Rollback(db); err != nil {
			log.Fatalf("rollback: %v", err)
		}
		fmt.Println("rolled back one migration")
		return
	}
	if err := db.Exec(stmt).Error; err != nil {
		log.Fatalf("truncate %s: %v", *table, err)
	}
	fmt.Printf("table %s truncated\n", *table)
}

// plan validates the flags and returns the truncate statement to run, or
// "" when rolling back.
func plan(table string, down bool) (string, error) {
	if down {
		if table != "" {
			return "", errors.New("-down and -table are mutually exclusive")
		}
		return "", nil
	}
	return truncateStatement(table)
}

// truncateStatement only accepts known table names, so the name is safe to interpolate.
func truncateStatement(table string) (string, error) {
	if table == "" {
		return "", fmt.Errorf("-table is required")
	}
	if !slices.Contains(resettable, table) {
		return "", fmt.Errorf("unknown table %q, expected one of %v", table, resettable)
	}
	return fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table), nil
}
