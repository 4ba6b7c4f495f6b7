// Package tasks persists rows of the tasks table.
//
// Every read and write is scoped to the owning user: a task is only
// visible through the user whose id is stored in tasks.user_id.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// Repository is the CRUD surface over the tasks table.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, userID, taskID int64) (*models.Task, error)
	// List returns the user's tasks, optionally restricted to statuses,
	// ordered by status rank, then priority and last status change, both
	// descending.
	List(ctx context.Context, userID int64, statuses []string) ([]*models.Task, error)
	// Update rewrites name, status and expiration_date and sets
	// last_status_modified to now. A nil description or priority keeps
	// the stored value.
	Update(ctx context.Context, userID, taskID int64, upd *models.TaskUpdate, now time.Time) error
	Delete(ctx context.Context, userID, taskID int64) error
}

const selectColumns = `id, name, description, status, user_id, created, last_status_modified, expiration_date, priority`

// orderBy ranks in_progress before new before done; unknown statuses go
// last. Within a status, tasks without a priority come first, as in a
// plain PostgreSQL descending sort.
const orderBy = `
		 ORDER BY
		   CASE status
		     WHEN 'in_progress' THEN 1
		     WHEN 'new' THEN 2
		     WHEN 'done' THEN 3
		     ELSE 4
		   END ASC,
		   priority DESC NULLS FIRST,
		   last_status_modified DESC`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	var created sql.NullTime

	err := s.Scan(&t.ID, &t.Name, &t.Description, &t.Status, &t.UserID,
		&created, &t.LastStatusModified, &t.ExpirationDate, &t.Priority)
	if err != nil {
		return nil, err
	}
	if created.Valid {
		t.Created = created.Time
	}

	return t, nil
}

func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return result, nil
}

// placeholders renders n numbered parameters starting at first, e.g.
// "$3, $4" for prefix "$".
func placeholders(prefix string, first, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s%d", prefix, first+i)
	}
	return strings.Join(parts, ", ")
}

func listArgs(userID int64, statuses []string) []any {
	args := make([]any, 0, len(statuses)+1)
	args = append(args, userID)
	for _, s := range statuses {
		args = append(args, s)
	}
	return args
}
