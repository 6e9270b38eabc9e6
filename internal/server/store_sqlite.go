package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blasherlabs/oshack/internal/oshack"
)

// SQLiteStore persists each session as one JSON document, mirroring the
// document-store contract the clients were written against. The username,
// kind, and last_activity columns exist only for lookup and ordering.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *oshack.Session) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, username, kind, doc, last_activity)
		VALUES (?, ?, ?, ?, ?)
	`, sess.UserID, sess.Username, string(sess.SessionType), string(doc), sess.LastActivity)
	return err
}

func (s *SQLiteStore) CreateSessions(ctx context.Context, sessions []*oshack.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sess := range sessions {
		doc, err := json.Marshal(sess)
		if err != nil {
			return fmt.Errorf("encoding session %s: %w", sess.UserID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (id, username, kind, doc, last_activity)
			VALUES (?, ?, ?, ?, ?)
		`, sess.UserID, sess.Username, string(sess.SessionType), string(doc), sess.LastActivity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*oshack.Session, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM sessions WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(doc)
}

func (s *SQLiteStore) FindSessionByUsername(ctx context.Context, username string) (*oshack.Session, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM sessions WHERE username = ? ORDER BY created_at LIMIT 1
	`, username).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(doc)
}

func (s *SQLiteStore) SaveSession(ctx context.Context, sess *oshack.Session) error {
	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET doc = ?, last_activity = ? WHERE id = ?
	`, string(doc), sess.LastActivity, sess.UserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*oshack.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc FROM sessions ORDER BY last_activity DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*oshack.Session
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		sess, err := decodeSession(doc)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) AdminByUsername(ctx context.Context, username string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE username = ?
	`, username).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.username
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func decodeSession(doc string) (*oshack.Session, error) {
	var sess oshack.Session
	if err := json.Unmarshal([]byte(doc), &sess); err != nil {
		return nil, fmt.Errorf("decoding session document: %w", err)
	}
	if sess.Progress == nil {
		sess.Progress = map[string]any{}
	}
	if sess.CompletedObjectives == nil {
		sess.CompletedObjectives = []int{}
	}
	return &sess, nil
}
