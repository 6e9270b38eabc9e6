package server

import (
	"context"
	"errors"

	"github.com/blasherlabs/oshack/internal/oshack"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence boundary for session documents and admin auth.
// Session writes are whole-document: the last writer of a document wins,
// which is the same consistency the original backing store offered.
type Store interface {
	CreateSession(ctx context.Context, s *oshack.Session) error
	// CreateSessions inserts a batch in one transaction; either every
	// session is created or none is.
	CreateSessions(ctx context.Context, sessions []*oshack.Session) error
	GetSession(ctx context.Context, id string) (*oshack.Session, error)
	FindSessionByUsername(ctx context.Context, username string) (*oshack.Session, error)
	SaveSession(ctx context.Context, s *oshack.Session) error
	DeleteSession(ctx context.Context, id string) error
	// ListSessions returns every session, most recently active first.
	ListSessions(ctx context.Context) ([]*oshack.Session, error)

	AdminByUsername(ctx context.Context, username string) (id, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
}
