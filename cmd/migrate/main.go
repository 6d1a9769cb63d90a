package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping: %v", err)
	}
	log.Println("Connected to database")

	applied, err := applyMigrations(db, dir)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("Done: %d migrations applied", applied)
}

// applyMigrations runs every .sql file in dir in lexical order, each inside
// its own transaction. The first failing file aborts the run so later
// migrations never apply on top of a broken schema.
func applyMigrations(db *sql.DB, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	applied := 0
	for _, f := range files {
		path := filepath.Join(dir, f)
		data, err := os.ReadFile(path)
		if err != nil {
			return applied, fmt.Errorf("read %s: %w", path, err)
		}
		content := string(data)
		if strings.TrimSpace(content) == "" {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return applied, fmt.Errorf("%s: begin: %w", f, err)
		}
		if _, err := tx.Exec(content); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("%s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("%s: commit: %w", f, err)
		}
		log.Printf("  %s OK", f)
		applied++
	}
	return applied, nil
}
