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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (name, description, status, user_id, last_status_modified, expiration_date, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created
		 `

	var created sql.NullTime
	err := r.db.QueryRowContext(ctx, query,
		task.Name, task.Description, task.Status, task.UserID,
		task.LastStatusModified, task.ExpirationDate, task.Priority).Scan(&task.ID, &created)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	task.Created = created.Time

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	query :=
		`SELECT ` + selectColumns + ` FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	task, err := scanTask(r.db.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID int64, statuses []string) ([]*models.Task, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks
		 WHERE user_id = $1`
	if len(statuses) > 0 {
		query += ` AND status IN (` + placeholders("$", 2, len(statuses)) + `)`
	}
	query += orderBy

	rows, err := r.db.QueryContext(ctx, query, listArgs(userID, statuses)...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanTasks(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, userID, taskID int64, upd *models.TaskUpdate, now time.Time) error {

	query :=
		`UPDATE tasks
		 SET name = $1,
		     description = COALESCE($2, description),
		     status = $3,
		     last_status_modified = $4,
		     expiration_date = $5,
		     priority = COALESCE($6, priority)
		 WHERE id = $7 AND user_id = $8
		 `

	res, err := r.db.ExecContext(ctx, query,
		upd.Name, upd.Description, upd.Status, now, upd.ExpirationDate, upd.Priority, taskID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}

	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, taskID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
