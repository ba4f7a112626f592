package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"safecircle/pkg/logger"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	connectAttempts = 5
	retryDelay      = 2 * time.Second
)

// PostgresDSN returns dsn if set, otherwise a connection string assembled
// from the user/password/host/port/dbname environment variables.
func PostgresDSN(dsn string) string {
	if dsn != "" {
		return dsn
	}
	dbUser := strings.TrimSpace(os.Getenv("user"))
	dbPass := strings.TrimSpace(os.Getenv("password"))
	dbHost := strings.TrimSpace(os.Getenv("host"))
	dbPort := strings.TrimSpace(os.Getenv("port"))
	dbName := strings.TrimSpace(os.Getenv("dbname"))

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=require", dbUser, dbPass, dbHost, dbPort, dbName)
}

// Connect opens a database handle for driver and pings it, retrying a few
// times in case of temporary DNS/network blips.
func Connect(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	for i := 0; i < connectAttempts; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Infof("Successfully connected to the %s database", driver)
			return db, nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in %s... (%v)", retryDelay, err)
		time.Sleep(retryDelay)
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to %s database after %d attempts: %w", driver, connectAttempts, err)
}
