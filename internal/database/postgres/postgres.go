package postgres

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"agriscan/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB_Status bool

func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	defaultConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	defaultDB, err := sql.Open("postgres", defaultConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	err = defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		createQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)
		_, err = defaultDB.Exec(createQuery)
		if err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		log.Printf("Database '%s' created successfully", cfg.DBname)
	}

	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}
	DB_Status = true

	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func RetryConnectOnFailed(wait_amount time.Duration, db **sqlx.DB, cfg config.PostgresConfig) {
	if DB_Status {
		log.Printf("false database lost connection alert! abort retry")
		return
	}

	newDB, err := ConnectAndCreateDB(cfg)
	if err == nil {
		*db = newDB
		log.Printf("database retry connection successfully")
		return
	}
	log.Printf("failed to retry connect database: %s, next retry in %v", err, wait_amount)
	time.Sleep(wait_amount)

	RetryConnectOnFailed(wait_amount, db, cfg)
}

func initSchema(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id       TEXT PRIMARY KEY,
		phone         TEXT NOT NULL UNIQUE,
		full_name     TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'farmer',
		city          TEXT,
		state         TEXT,
		gps_lat       DOUBLE PRECISION,
		gps_lng       DOUBLE PRECISION,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_active   TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS reports (
		report_id           TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL REFERENCES users(user_id),
		status              TEXT NOT NULL DEFAULT 'submitted',
		gps_lat             DOUBLE PRECISION NOT NULL,
		gps_lng             DOUBLE PRECISION NOT NULL,
		city                TEXT NOT NULL DEFAULT '',
		state               TEXT NOT NULL DEFAULT '',
		image_path          TEXT,
		plant_id            TEXT,
		plant_name          TEXT,
		plant_confidence    DOUBLE PRECISION,
		disease_id          TEXT,
		disease_name        TEXT,
		disease_confidence  DOUBLE PRECISION,
		pest_id             TEXT,
		pest_name           TEXT,
		pest_confidence     DOUBLE PRECISION,
		drought_confidence  DOUBLE PRECISION,
		drought_description TEXT,
		drought_level       INTEGER,
		reviewed_by         TEXT,
		reviewed_at         TIMESTAMPTZ,
		review_notes        TEXT,
		timestamp           TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_reports_state ON reports(state);
	CREATE INDEX IF NOT EXISTS idx_reports_status ON reports(status);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON reports(timestamp);

	CREATE TABLE IF NOT EXISTS alerts (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		severity     TEXT NOT NULL,
		target_state TEXT NOT NULL,
		target_city  TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		expires_at   TIMESTAMPTZ NOT NULL,
		is_active    BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE TABLE IF NOT EXISTS plants (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		scientific_name TEXT NOT NULL DEFAULT '',
		common_diseases TEXT[] NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS diseases (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		symptoms      TEXT,
		treatment     TEXT NOT NULL DEFAULT '',
		severity      TEXT NOT NULL DEFAULT 'low',
		plant_type_id TEXT NOT NULL REFERENCES plants(id),
		plant_type    TEXT NOT NULL DEFAULT '',
		image_url     TEXT
	);`

	_, err := db.Exec(schema)
	return err
}
