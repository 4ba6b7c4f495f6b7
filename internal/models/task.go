package models

import "time"

// Known task statuses. The storage layer accepts any string of up to 20
// characters; the services layer restricts writes to these values.
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Column limits declared by the schema.
const (
	MaxEmailLength    = 100
	MaxPasswordLength = 100
	MaxNameLength     = 100
	MinPriority       = 1
	MaxPriority       = 10
)

// Task is a row of the tasks table. Nil pointers map to NULL columns.
type Task struct {
	ID          int64
	Name        string
	Description *string
	Status      string
	// UserID is the owning user; a task may be unowned.
	UserID             *int64
	Created            time.Time
	LastStatusModified time.Time
	// ExpirationDate is a calendar date; only the date part is stored.
	ExpirationDate *time.Time
	Priority       *int
}

// TaskUpdate carries the new values of a task's mutable columns. A nil
// Description or Priority keeps the stored value; a nil ExpirationDate
// clears it.
type TaskUpdate struct {
	Name           string
	Description    *string
	Status         string
	ExpirationDate *time.Time
	Priority       *int
}
