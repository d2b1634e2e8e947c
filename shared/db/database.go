package db

import (
	"database/sql"
)

// Database is the lifecycle wrapper around a SQL connection. Connect runs
// pending migrations before returning.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
