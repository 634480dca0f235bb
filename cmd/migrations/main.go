package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/hoavote/ballotbot/internal/config"
)

// Applies the SQL migrations under the postgres adapter. With no
// argument every *up.sql file runs in name order; with an argument only
// the matching migration runs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	files, err := migrationFiles(basePath, nameFilter())
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(basePath, name))
		if err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("Failed to execute %s: %v", name, err)
		}
		fmt.Printf("Applied %s\n", name)
	}
}

func nameFilter() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return ""
}

func migrationFiles(basePath, filter string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), "up.sql") {
			continue
		}
		if filter != "" && !strings.Contains(e.Name(), filter) {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no matching migration files")
	}
	return files, nil
}
