package db

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"
)

func MustOpen(dsn string) *sql.DB {
	if dsn == "" {
		log.Fatal("database DSN not set")
	}

	database, err := openDB(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return database
}

func openDB(dsn string) (*sql.DB, error) {
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
