// Package oshack defines the core domain types and progression logic for the
// hacking-scenario simulation. It has zero external dependencies beyond ID
// generation. Everything here is pure Go so the server layer can persist the
// session document as-is.
package oshack

import (
	"time"

	"github.com/google/uuid"
)

// Kind selects which of the two experiences a session runs.
type Kind string

const (
	KindScenario   Kind = "scenario"
	KindPsychoTest Kind = "psychotest"
)

// Session is the authoritative record for one participant. The JSON shape is
// a durable contract: the player client and the admin client both read the
// persisted document independently, so field names must not change.
type Session struct {
	UserID              string         `json:"userId"`
	Username            string         `json:"username"`
	SessionType         Kind           `json:"sessionType"`
	CurrentObjective    int            `json:"currentObjective"`
	CompletedObjectives []int          `json:"completedObjectives"`
	StartedAt           int64          `json:"startedAt"`
	LastActivity        int64          `json:"lastActivity"`
	IsCompleted         bool           `json:"isCompleted"`
	SuccessCode         string         `json:"successCode,omitempty"`
	Progress            map[string]any `json:"progress"`

	// Psychotest sessions only.
	PsychoResults *PsychoResults `json:"psychoResults,omitempty"`

	// Set by the admin panel; shown to the player the next time their client
	// observes the document, then cleared by an explicit ack.
	OwnerNotification *OwnerNotification `json:"ownerNotification,omitempty"`
}

// PsychoGameScore is one mini-game's entry in the psychotest score ledger.
type PsychoGameScore struct {
	Score       int   `json:"score"`
	MaxScore    int   `json:"maxScore"`
	Percentage  int   `json:"percentage"`
	Skipped     bool  `json:"skipped,omitempty"`
	CompletedAt int64 `json:"completedAt,omitempty"`
}

// PsychoResults aggregates the per-game scores of a psychotest session.
type PsychoResults struct {
	CompletedGames int                        `json:"completedGames"`
	TotalGames     int                        `json:"totalGames"`
	Scores         map[string]PsychoGameScore `json:"scores"`
	TotalScore     int                        `json:"totalScore"`
	AverageScore   int                        `json:"averageScore"`
}

// OwnerNotification is a one-shot message pushed by the admin panel.
type OwnerNotification struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// NotificationKind tags a user-visible notification.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
	NotifyError   NotificationKind = "error"
	NotifyOwner   NotificationKind = "owner"
)

// Notification is a transient user-visible message. Duration is in
// milliseconds; zero means the notification persists until dismissed.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp int64            `json:"timestamp"`
	Duration  int64            `json:"duration,omitempty"`
}

// NewNotification stamps a notification with an ID and the current time.
func NewNotification(kind NotificationKind, title, message string, duration int64) Notification {
	return Notification{
		ID:        "notif_" + uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		Timestamp: nowMillis(),
		Duration:  duration,
	}
}

// NewSession creates a fresh session of the given kind, ready to persist.
func NewSession(username string, kind Kind) *Session {
	now := nowMillis()
	s := &Session{
		UserID:              "user_" + uuid.NewString(),
		Username:            username,
		SessionType:         kind,
		CompletedObjectives: []int{},
		StartedAt:           now,
		LastActivity:        now,
		Progress:            map[string]any{},
	}
	if kind == KindPsychoTest {
		// Psychotest sessions have no scenario objective; 0 marks not-started.
		s.CurrentObjective = 0
		s.PsychoResults = newPsychoResults()
	} else {
		s.CurrentObjective = FirstObjectiveID
	}
	return s
}

func newPsychoResults() *PsychoResults {
	return &PsychoResults{
		TotalGames: TotalPsychoGames,
		Scores:     map[string]PsychoGameScore{},
	}
}

// Reset restores a session to its initial progression state while keeping
// its identity, username, and kind. Timestamps are refreshed.
func (s *Session) Reset() {
	now := nowMillis()
	s.CompletedObjectives = []int{}
	s.IsCompleted = false
	s.SuccessCode = ""
	s.Progress = map[string]any{}
	s.OwnerNotification = nil
	s.StartedAt = now
	s.LastActivity = now
	if s.SessionType == KindPsychoTest {
		s.CurrentObjective = 0
		s.PsychoResults = newPsychoResults()
	} else {
		s.CurrentObjective = FirstObjectiveID
		s.PsychoResults = nil
	}
}

// Touch records activity; drives the admin panel's presence heuristic.
func (s *Session) Touch() {
	s.LastActivity = nowMillis()
}

// ProgressFlag reports whether a progress key holds a truthy boolean. The
// progress map is free-form (it round-trips through JSON), so values may be
// bool or anything else; only an actual true counts.
func (s *Session) ProgressFlag(key string) bool {
	v, ok := s.Progress[key].(bool)
	return ok && v
}

// SetProgress records an ad hoc progress flag or value.
func (s *Session) SetProgress(key string, value any) {
	if s.Progress == nil {
		s.Progress = map[string]any{}
	}
	s.Progress[key] = value
	s.Touch()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
