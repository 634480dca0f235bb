package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/hoavote/ballotbot/internal/adapters/repository/postgres"
	"github.com/hoavote/ballotbot/internal/config"
	"github.com/hoavote/ballotbot/internal/core/services"
)

// Prints the current voting summary to stdout. Run by an operator with
// direct database access; the chat-side results command goes through
// the admin check instead.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	timeout := flag.Duration("timeout", 5*time.Minute, "Job execution timeout")
	flag.Parse()

	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ballotRepo := postgres.NewBallotRepository(db)
	tallyService := services.NewTallyService(ballotRepo)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	summary, err := tallyService.Summarize(ctx)
	if err != nil {
		log.Fatalf("Error summarizing votes: %v", err)
	}

	for _, segment := range services.RenderSummary(summary) {
		fmt.Println(segment)
	}
	fmt.Printf("Total complete ballots: %d\n", summary.Total)
}
