package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"leettrack/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	fmt.Println("Successfully connected to PostgreSQL database!")
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so startup is safe to repeat.
func Migrate(ctx context.Context) {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_summaries (
			user_id UUID NOT NULL REFERENCES users(id),
			date VARCHAR(10) NOT NULL,
			total_count INT NOT NULL,
			easy INT NOT NULL,
			medium INT NOT NULL,
			hard INT NOT NULL,
			PRIMARY KEY (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS total_stats (
			user_id UUID PRIMARY KEY REFERENCES users(id),
			easy INT NOT NULL,
			medium INT NOT NULL,
			hard INT NOT NULL,
			total_solved INT NOT NULL,
			refreshed_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contest_stats (
			user_id UUID PRIMARY KEY REFERENCES users(id),
			attended INT NOT NULL,
			rating DOUBLE PRECISION NOT NULL,
			global_ranking INT NOT NULL,
			total_participants INT NOT NULL,
			top_percentage DOUBLE PRECISION NOT NULL,
			badge TEXT NOT NULL DEFAULT '',
			refreshed_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_summaries_date ON daily_summaries(date)`,
	}

	for _, migration := range migrations {
		if _, err := DB.ExecContext(ctx, migration); err != nil {
			log.Fatalf("Error running migration: %v", err)
		}
	}
	fmt.Println("Database schema ready.")
}

func Close() {
	if DB != nil {
		DB.Close()
		fmt.Println("Database connection closed.")
	}
}
