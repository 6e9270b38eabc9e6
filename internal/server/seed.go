package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the panel account if it does not exist. Idempotent:
// an existing account with the same username is left untouched, so a changed
// password env var does not rotate credentials on restart.
func EnsureAdmin(ctx context.Context, logger *slog.Logger, db *sql.DB, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	res, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO admins (username, password_hash) VALUES (?, ?)`,
		username, string(hash))
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logger.Info("admin account created", "username", username)
	}
	return nil
}
