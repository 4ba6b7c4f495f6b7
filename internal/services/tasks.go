package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/repomanager"
)

// TaskService manages the tasks of a user. Writes are limited to the
// known statuses and stamp last_status_modified from the service clock.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	switch s {
	case models.StatusNew, models.StatusInProgress, models.StatusDone:
		return true
	}
	return false
}

func validateTask(in *models.TaskUpdate) error {
	if in.Name == "" || utf8.RuneCountInString(in.Name) > models.MaxNameLength {
		return ErrInvalidName
	}
	if !ValidStatus(in.Status) {
		return ErrInvalidStatus
	}
	if in.Priority != nil && (*in.Priority < models.MinPriority || *in.Priority > models.MaxPriority) {
		return ErrInvalidPriority
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, userID int64, in *models.TaskUpdate) (*models.Task, error) {
	if err := validateTask(in); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:               in.Name,
		Description:        in.Description,
		Status:             in.Status,
		UserID:             &userID,
		LastStatusModified: s.now(),
		ExpirationDate:     in.ExpirationDate,
		Priority:           in.Priority,
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetByID(ctx, userID, taskID)
}

// List returns the user's tasks, restricted to statuses when any are given.
func (s *TaskService) List(ctx context.Context, userID int64, statuses ...string) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).List(ctx, userID, statuses)
}

// Update rewrites the task's name, status and expiration date and stamps
// last_status_modified. A nil description or priority keeps the stored
// value. The task must exist and belong to userID; otherwise
// common.ErrorNotFound is returned.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, in *models.TaskUpdate) (*models.Task, error) {
	if err := validateTask(in); err != nil {
		return nil, err
	}

	var updated *models.Task

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tasks(tx)

		if _, err := repo.GetByID(ctx, userID, taskID); err != nil {
			return err
		}

		if err := repo.Update(ctx, userID, taskID, in, s.now()); err != nil {
			return err
		}

		t, err := repo.GetByID(ctx, userID, taskID)
		updated = t
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("error updating task %d: %w", taskID, err)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, userID, taskID)
}
