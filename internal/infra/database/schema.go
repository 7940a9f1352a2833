package database

import (
	"context"
	"fmt"
)

var sqliteSchema = []string{
	`create table if not exists punches (
		id integer primary key autoincrement,
		punch_day text not null unique,
		clock_in timestamp,
		lunch_start timestamp,
		lunch_end timestamp,
		clock_out timestamp,
		is_work_day boolean
	)`,
	`create table if not exists holidays (
		id integer primary key autoincrement,
		month text not null,
		day integer not null,
		year integer not null,
		unique (month, day, year)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS punches (
		id BIGSERIAL PRIMARY KEY,
		punch_day DATE NOT NULL UNIQUE,
		clock_in TIMESTAMPTZ,
		lunch_start TIMESTAMPTZ,
		lunch_end TIMESTAMPTZ,
		clock_out TIMESTAMPTZ,
		is_work_day BOOLEAN
	)`,
	`CREATE TABLE IF NOT EXISTS holidays (
		id BIGSERIAL PRIMARY KEY,
		month VARCHAR(16) NOT NULL,
		day INTEGER NOT NULL,
		year INTEGER NOT NULL,
		CONSTRAINT holidays_date_unique UNIQUE (month, day, year)
	)`,
}

// Migrate creates the punches and holidays tables if they do not exist.
func Migrate(ctx context.Context, db *DB) error {
	stmts := sqliteSchema
	if db.driver == DriverPostgres {
		stmts = postgresSchema
	}

	txn, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	for _, stmt := range stmts {
		if _, err := txn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return txn.Commit()
}
