/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing: the heaviest writers are ADIF imports, which insert one
// row at a time, so a modest pool is enough even with several users
// importing at once.
const (
	poolMaxConns = 20
	poolMinConns = 2
)

var pool *pgxpool.Pool

// Init connects the package-level pool to the database named by the
// DATABASE_URL environment variable, creating the database first when
// it does not exist yet.
func Init(ctx context.Context) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return ErrDatabaseURLEnvVarNotSet
	}

	if err := ensureDatabaseExists(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns

	pool, err = pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database", "database", config.ConnConfig.Database)

	return nil
}

// GetPool returns the shared connection pool.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// ensureDatabaseExists creates the target database by connecting to
// the maintenance database first. Useful on a fresh PostgreSQL
// instance where only the role exists.
func ensureDatabaseExists(ctx context.Context, databaseURL string) error {
	config, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	dbName := config.Database
	if dbName == "" {
		return ErrDatabaseNameNotSpecified
	}

	config.Database = "postgres"

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}

	defer func() {
		if err := conn.Close(ctx); err != nil {
			logger.Warn("Failed to close bootstrap database connection", "error", err)
		}
	}()

	var exists bool

	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		// Database names cannot be bind parameters; pgx.Identifier
		// quotes the name instead.
		sql := "CREATE DATABASE " + pgx.Identifier{dbName}.Sanitize()

		_, err = conn.Exec(ctx, sql)
		if err != nil {
			// Another process may have created it between the check
			// and the CREATE.
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("failed to create database: %w", err)
			}
		}
	}

	return nil
}
