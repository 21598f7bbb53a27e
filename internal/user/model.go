package user

import "github.com/google/uuid"

// User represents a row in the users table. TeamName is joined from teams and
// nil for users without a team.
type User struct {
	ID       uuid.UUID
	Username string
	TeamID   *uuid.UUID
	TeamName *string
	IsAdmin  bool
}
