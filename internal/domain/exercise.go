package domain

import "time"

// User is the account record stored in the users collection.
type User struct {
	ID       string
	Username string
}

// Exercise is a single logged workout referencing its owning User.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}

// LogEntry is one appended line of a user's exercise log. The date is kept
// as the rendered display string, the same form it is returned in.
type LogEntry struct {
	Description string
	Duration    int
	Date        string
}

// ExerciseLog is the per-user aggregate of every appended exercise.
// Count tracks lifetime appends and always equals len(Entries).
type ExerciseLog struct {
	ID      string
	UserID  string
	Count   int
	Entries []LogEntry
}
