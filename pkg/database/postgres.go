package database

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func Connect() *sql.DB {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Println("[DB] Warning: DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("[DB] Failed to open connection:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("[DB] Ping failed:", err)
	}

	log.Println("[DB] PostgreSQL connection established")
	return db
}
