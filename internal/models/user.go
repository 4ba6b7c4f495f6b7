// Package models defines the rows persisted in the users and tasks tables.
package models

// User is a row of the users table. Password holds whatever the caller
// stored; the services layer stores an argon2id PHC string.
type User struct {
	ID       int64
	Email    string
	Password string
}
