package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/models"
)

// dateLayout is how expiration dates are written to the DATE column; the
// driver parses it back into a time.Time at UTC midnight.
const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// sqliteLayouts are the text forms a timestamp can come back in when the
// driver does not see the declared column type, as with RETURNING.
var sqliteLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// sqliteTime scans a TIMESTAMP column delivered either as time.Time or as
// its stored text.
type sqliteTime struct {
	time.Time
}

func (t *sqliteTime) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = x
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	}
	return fmt.Errorf("cannot scan %T into timestamp", v)
}

func (t *sqliteTime) parse(s string) error {
	for _, layout := range sqliteLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// nullable turns an optional column value into a driver argument.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func priorityArg(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func (r *SQLiteRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	var created sqliteTime
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (name, description, status, user_id, last_status_modified, expiration_date, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created
	`, task.Name, nullable(task.Description), task.Status, nullable(task.UserID),
		task.LastStatusModified, dateArg(task.ExpirationDate), priorityArg(task.Priority)).Scan(&task.ID, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", dbx.ClassifyError(err))
	}
	task.Created = created.Time

	return task, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", taskID, err)
	}
	return task, nil
}

func (r *SQLiteRepository) List(ctx context.Context, userID int64, statuses []string) ([]*models.Task, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks WHERE user_id = ?1`
	if len(statuses) > 0 {
		query += ` AND status IN (` + placeholders("?", 2, len(statuses)) + `)`
	}
	query += orderBy

	rows, err := r.db.QueryContext(ctx, query, listArgs(userID, statuses)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return scanTasks(rows)
}

func (r *SQLiteRepository) Update(ctx context.Context, userID, taskID int64, upd *models.TaskUpdate, now time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?1,
		    description = COALESCE(?2, description),
		    status = ?3,
		    last_status_modified = ?4,
		    expiration_date = ?5,
		    priority = COALESCE(?6, priority)
		WHERE id = ?7 AND user_id = ?8
	`, upd.Name, nullable(upd.Description), upd.Status, now, dateArg(upd.ExpirationDate), priorityArg(upd.Priority), taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", taskID, dbx.ClassifyError(err))
	}

	return checkAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID, taskID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}

	return checkAffected(res)
}
