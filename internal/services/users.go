// Package services holds the application rules layered over the
// repositories: input validation, password hashing and status
// bookkeeping for tasks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"unicode/utf8"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/repomanager"
)

// PasswordHasher turns a plain password into the string stored in
// users.password and checks a password against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// UserService registers, looks up and deletes users.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: h}
}

func validateEmail(email string) error {
	if email == "" || utf8.RuneCountInString(email) > models.MaxEmailLength {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Register stores a new user with a hashed password. A second
// registration with the same email fails with ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrInvalidPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	if utf8.RuneCountInString(hash) > models.MaxPasswordLength {
		return nil, fmt.Errorf("error hashing password: hash exceeds %d characters", models.MaxPasswordLength)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, &models.User{Email: email, Password: hash})
	if err != nil {
		if errors.Is(err, common.ErrUniqueViolation) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

// CheckCredentials returns the user registered under email when password
// matches the stored hash. An unknown email and a wrong password both give
// ErrBadCredentials.
func (s *UserService) CheckCredentials(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, ErrBadCredentials
	}

	return user, nil
}

// Delete removes the user together with every task it owns.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.repomanager.Users(s.db).Delete(ctx, userID)
}
