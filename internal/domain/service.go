// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when a user id resolves to no stored user.
	ErrUserNotFound = errors.New("user not found")
	// ErrLogNotFound is returned when a user has no exercise log yet.
	ErrLogNotFound = errors.New("no logs found for this user")
)

// DisplayDateLayout renders calendar dates the way log entries store them,
// e.g. "Sun Jan 15 2023".
const DisplayDateLayout = "Mon Jan 02 2006"

// dateLayouts are accepted input forms, tried in order.
var dateLayouts = []string{"2006-01-02", DisplayDateLayout, time.RFC3339}

// FormatDate renders t as the display-string form used in logs and responses.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// ParseDate interprets raw as a calendar date in UTC.
func ParseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Repository captures persistence operations. Lookups return nil without an
// error when the record does not exist; not-found semantics belong here.
type Repository interface {
	InsertUser(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	InsertExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	AppendLogEntry(ctx context.Context, userID string, entry LogEntry) error
	GetLog(ctx context.Context, userID string) (*ExerciseLog, error)
}

// Service orchestrates tracker workflows.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser stores a new user. Usernames are free text and duplicates are
// allowed; each call produces a record with a fresh id.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	return s.repo.InsertUser(ctx, username)
}

// ListUsers returns every stored user in the store's natural order.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// AddExerciseInput captures the payload from the API layer. A zero Date means
// the exercise is dated to the current moment.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}

// ExerciseResult pairs the stored exercise with its owning user.
type ExerciseResult struct {
	User     User
	Exercise Exercise
}

// AddExercise stores one exercise for an existing user and appends it to the
// user's log, creating the log on first use. The exercise insert and the log
// append are two separate writes; the append itself is a single atomic
// increment-and-push upsert.
func (s *Service) AddExercise(ctx context.Context, input AddExerciseInput) (*ExerciseResult, error) {
	user, err := s.repo.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	exercise := Exercise{
		UserID:      user.ID,
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
	}

	saved, err := s.repo.InsertExercise(ctx, exercise)
	if err != nil {
		return nil, err
	}

	entry := LogEntry{
		Description: saved.Description,
		Duration:    saved.Duration,
		Date:        FormatDate(saved.Date),
	}
	if err := s.repo.AppendLogEntry(ctx, user.ID, entry); err != nil {
		return nil, err
	}

	return &ExerciseResult{User: *user, Exercise: *saved}, nil
}

// LogQuery narrows a log read. Zero From means the epoch, zero To means now,
// and Limit <= 0 means no limit.
type LogQuery struct {
	From  time.Time
	To    time.Time
	Limit int
}

// UserLog is the filtered view of a user's exercise log. Count is the length
// of Entries after filtering and limiting, not the lifetime total.
type UserLog struct {
	User    User
	Count   int
	Entries []LogEntry
}

// GetLogs returns the user's log entries whose dates fall within [From, To]
// inclusive, truncated to the first Limit entries in insertion order. The
// log-exists check runs before the user lookup.
func (s *Service) GetLogs(ctx context.Context, userID string, query LogQuery) (*UserLog, error) {
	logRecord, err := s.repo.GetLog(ctx, userID)
	if err != nil {
		return nil, err
	}
	if logRecord == nil {
		return nil, ErrLogNotFound
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	from := query.From
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}
	to := query.To
	if to.IsZero() {
		to = time.Now().UTC()
	}

	entries := make([]LogEntry, 0, len(logRecord.Entries))
	for _, entry := range logRecord.Entries {
		date, err := ParseDate(entry.Date)
		if err != nil {
			// Entries whose stored date no longer parses cannot be
			// placed in the range and are dropped from the view.
			continue
		}
		if date.Before(from) || date.After(to) {
			continue
		}
		entries = append(entries, entry)
	}

	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}

	return &UserLog{User: *user, Count: len(entries), Entries: entries}, nil
}
