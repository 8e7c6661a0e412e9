package tasks

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TaskStatus is a task's lifecycle state
type TaskStatus string

const (
	// StatusPending is the default state for new tasks
	StatusPending TaskStatus = "PENDING"
	// StatusInProgress marks a task as started
	StatusInProgress TaskStatus = "IN_PROGRESS"
	// StatusCompleted marks a task as done
	StatusCompleted TaskStatus = "COMPLETED"
)

// IsValid checks the status against the defined enumeration
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// AllStatuses returns the status enumeration in lifecycle order
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// User is the account model
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	Roles          []Role     `bun:"roles,type:jsonb" json:"roles,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasRole reports whether the user's role set contains role
func (u *User) HasRole(role Role) bool {
	return ContainsRole(u.Roles, role)
}

// IsAdmin reports whether the user holds the administrative role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// EnsureRoles guarantees a non-empty role set; registration always yields
// at least USER
func (u *User) EnsureRoles() {
	if len(u.Roles) == 0 {
		u.Roles = []Role{RoleUser}
	}
}

// Task is a unit of work owned by a single user for its whole lifecycle
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:tsk"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Status        TaskStatus `bun:"status,notnull" json:"status,omitempty"`
	Priority      int        `bun:"priority,notnull,default:0" json:"priority"`
	Deadline      *time.Time `bun:"deadline,nullzero" json:"deadline,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// OwnedBy reports whether the task belongs to the given user id
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}
