// Command tallyreport prints final tallies for every finished event.
// Intended for post-election reporting and spot-checking the live
// numbers.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/votehub/api/internal/adapters/repository/postgres"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
	"github.com/votehub/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	eventRepo := postgres.NewEventRepository(db)
	tallyRepo := postgres.NewTallyRepository(db)
	tallySvc := services.NewTallyService(eventRepo, tallyRepo, ports.NoopNotifier{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	events, err := eventRepo.GetAll(ctx)
	if err != nil {
		log.Fatalf("Error fetching events: %v", err)
	}

	now := time.Now()
	for _, event := range events {
		if event.PhaseAt(now) != domain.PhaseFinished {
			continue
		}

		tally, err := tallySvc.ComputeTally(ctx, event.ID)
		if err != nil {
			log.Fatalf("Error computing tally for event %s: %v", event.ID, err)
		}

		fmt.Printf("%s (%s, %s)\n", event.Title, event.ID, event.ElectionType)
		for _, row := range tally.SingleMulti {
			fmt.Printf("  %-30s %d votes\n", row.NomineeName, row.TotalVotes)
		}
		for _, row := range tally.Rank {
			fmt.Printf("  %-30s rank score %d\n", row.NomineeName, row.TotalRankScore)
		}
	}
}
