// Package testutil provides a shared MySQL fixture for integration tests.
// Tests are skipped when no database is reachable, so the unit suite stays
// runnable without infrastructure.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultTestDSN = "root@tcp(localhost:3306)/ticket_sales_test?charset=utf8mb4&parseTime=true&loc=UTC"

// schema mirrors the externally owned ticket-sales tables.  tickets.order_id
// carries no FK because tickets and orders reference each other.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        name VARCHAR(255) NOT NULL,
        location VARCHAR(255) NOT NULL,
        capacity INT UNSIGNED NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS categories (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        name VARCHAR(255) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS shows (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        name VARCHAR(255) NOT NULL,
        description TEXT NULL,
        show_date DATETIME NOT NULL,
        ticket_price DECIMAL(10,2) NOT NULL,
        category_id BIGINT UNSIGNED NOT NULL,
        venue_id BIGINT UNSIGNED NOT NULL,
        image_file_name VARCHAR(255) NULL,
        FOREIGN KEY (category_id) REFERENCES categories(id),
        FOREIGN KEY (venue_id) REFERENCES venues(id)
    )`,
	`CREATE TABLE IF NOT EXISTS users (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        name VARCHAR(255) NOT NULL,
        email VARCHAR(255) NOT NULL,
        card_number VARCHAR(32) NULL,
        card_holder VARCHAR(255) NULL,
        card_expiry VARCHAR(8) NULL,
        card_cvv VARCHAR(4) NULL
    )`,
	`CREATE TABLE IF NOT EXISTS tickets (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        seat_number VARCHAR(16) NOT NULL,
        price DECIMAL(10,2) NOT NULL,
        is_available TINYINT(1) NOT NULL DEFAULT 1,
        show_id BIGINT UNSIGNED NOT NULL,
        venue_id BIGINT UNSIGNED NOT NULL,
        order_id BIGINT UNSIGNED NULL,
        FOREIGN KEY (show_id) REFERENCES shows(id),
        FOREIGN KEY (venue_id) REFERENCES venues(id)
    )`,
	`CREATE TABLE IF NOT EXISTS orders (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        user_id BIGINT UNSIGNED NOT NULL,
        ticket_id BIGINT UNSIGNED NOT NULL,
        order_date DATETIME NOT NULL,
        use_custom_payment TINYINT(1) NOT NULL DEFAULT 0,
        custom_card_number VARCHAR(32) NULL,
        custom_card_holder VARCHAR(255) NULL,
        custom_card_expiry VARCHAR(8) NULL,
        FOREIGN KEY (user_id) REFERENCES users(id)
    )`,
}

// NewTestDB opens the test database named by TEST_DATABASE_DSN (or a local
// default), creates the schema, and registers cleanup.  The test is
// skipped when the server does not answer a ping.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(8)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("skipping MySQL integration tests: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			t.Fatalf("create schema: %v", err)
		}
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// ResetAll truncates every table so each test starts from an empty schema.
func ResetAll(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	stmts := []string{
		`SET FOREIGN_KEY_CHECKS = 0`,
		`TRUNCATE orders`, `TRUNCATE tickets`, `TRUNCATE shows`,
		`TRUNCATE users`, `TRUNCATE venues`, `TRUNCATE categories`,
		`SET FOREIGN_KEY_CHECKS = 1`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			t.Fatalf("reset: %v", err)
		}
	}
}

// InsertVenue seeds one venue and returns its id.
func InsertVenue(t *testing.T, db *sql.DB, name, location string, capacity uint32) uint64 {
	t.Helper()
	return insertRow(t, db, `INSERT INTO venues (name, location, capacity) VALUES (?, ?, ?)`, name, location, capacity)
}

// InsertCategory seeds one category and returns its id.
func InsertCategory(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	return insertRow(t, db, `INSERT INTO categories (name) VALUES (?)`, name)
}

// InsertShow seeds one show and returns its id.
func InsertShow(t *testing.T, db *sql.DB, name string, date time.Time, price float64, categoryID, venueID uint64) uint64 {
	t.Helper()
	return insertRow(t, db,
		`INSERT INTO shows (name, show_date, ticket_price, category_id, venue_id) VALUES (?, ?, ?, ?, ?)`,
		name, date.UTC().Format("2006-01-02 15:04:05"), price, categoryID, venueID)
}

// InsertTicket seeds one available ticket and returns its id.
func InsertTicket(t *testing.T, db *sql.DB, seat string, price float64, showID, venueID uint64) uint64 {
	t.Helper()
	return insertRow(t, db,
		`INSERT INTO tickets (seat_number, price, is_available, show_id, venue_id) VALUES (?, ?, 1, ?, ?)`,
		seat, price, showID, venueID)
}

// InsertUser seeds one user and returns its id.  card may be empty for a
// user with no stored default card.
func InsertUser(t *testing.T, db *sql.DB, name, email, card string) uint64 {
	t.Helper()
	var cardVal interface{}
	if card != "" {
		cardVal = card
	}
	return insertRow(t, db, `INSERT INTO users (name, email, card_number) VALUES (?, ?, ?)`, name, email, cardVal)
}

func insertRow(t *testing.T, db *sql.DB, query string, args ...interface{}) uint64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("seed insert: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed insert id: %v", err)
	}
	return uint64(id)
}
