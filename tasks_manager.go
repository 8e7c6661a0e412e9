package tasks

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// TaskRequest carries the writable task attributes. Title, Description, and
// Deadline always overwrite the stored values on update; Status and Priority
// are applied only when present.
type TaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      *TaskStatus `json:"status"`
	Priority    *int        `json:"priority"`
	Deadline    *time.Time  `json:"deadline"`
}

// TaskRecord is the task read model returned to callers, with the owner's
// id and username materialized.
type TaskRecord struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    int        `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	UserID      uuid.UUID  `json:"user_id"`
	Username    string     `json:"username,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewTaskRecord builds the read model from a task, using the joined owner
// when loaded.
func NewTaskRecord(task *Task) *TaskRecord {
	record := &TaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.User != nil {
		record.Username = task.User.Username
	}

	return record
}

// TaskManager implements the task operations with per-principal access
// scoping. Regular users see and touch only their own tasks; admins see
// and touch everything.
type TaskManager struct {
	repo   RepositoryManager
	logger Logger
}

// NewTaskManager creates a TaskManager backed by the given repositories
func NewTaskManager(repo RepositoryManager) *TaskManager {
	return &TaskManager{
		repo:   repo,
		logger: defLogger{},
	}
}

func (m *TaskManager) WithLogger(l Logger) *TaskManager {
	if l != nil {
		m.logger = l
	}
	return m
}

// ResolvePrincipal loads the account behind an authenticated username and
// builds the Principal used by every operation. A token that outlives its
// account is an internal inconsistency, not a client error.
func (m *TaskManager) ResolvePrincipal(ctx context.Context, username string) (Principal, error) {
	user, err := m.repo.Users().GetByIdentifier(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, errors.Wrap(err, errors.CategoryInternal, "failed to resolve principal")
	}

	user.EnsureRoles()

	return Principal{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles,
	}, nil
}

// CreateTask creates a task owned by the principal. Status defaults to
// PENDING and priority to 0 when the request omits them.
func (m *TaskManager) CreateTask(ctx context.Context, principal Principal, req TaskRequest) (*TaskRecord, error) {
	task := &Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusPending,
		UserID:      principal.UserID,
	}

	if req.Status != nil {
		task.Status = *req.Status
	}

	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}

	created, err := m.repo.Tasks().Create(ctx, task)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create task")
	}

	m.logger.Info("task created", "task_id", created.ID.String(), "user_id", principal.UserID.String())

	record := NewTaskRecord(created)
	record.Username = principal.Username

	return record, nil
}

// ListTasks returns a page of tasks visible to the principal. Admins see
// every task; everyone else is scoped to their own.
func (m *TaskManager) ListTasks(ctx context.Context, principal Principal, query TaskQuery) (*Page[*TaskRecord], error) {
	if !principal.IsAdmin() {
		ownerID := principal.UserID
		query.OwnerID = &ownerID
	}

	page, err := m.repo.Tasks().FindPage(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list tasks")
	}

	return MapPage(page, func(t *Task) *TaskRecord {
		return NewTaskRecord(t)
	}), nil
}

// GetTask fetches a single task the principal is allowed to see
func (m *TaskManager) GetTask(ctx context.Context, principal Principal, id uuid.UUID) (*TaskRecord, error) {
	task, err := m.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.authorize(principal, task); err != nil {
		return nil, err
	}

	return NewTaskRecord(task), nil
}

// UpdateTask applies the request to an existing task. Title, Description,
// and Deadline always take the request values; Status and Priority keep
// the stored values unless the request sets them.
func (m *TaskManager) UpdateTask(ctx context.Context, principal Principal, id uuid.UUID, req TaskRequest) (*TaskRecord, error) {
	task, err := m.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := m.authorize(principal, task); err != nil {
		return nil, err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Deadline = req.Deadline

	if req.Status != nil {
		task.Status = *req.Status
	}

	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	updated, err := m.repo.Tasks().Save(ctx, task)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update task")
	}

	return NewTaskRecord(updated), nil
}

// DeleteTask removes a task the principal is allowed to touch
func (m *TaskManager) DeleteTask(ctx context.Context, principal Principal, id uuid.UUID) error {
	task, err := m.loadTask(ctx, id)
	if err != nil {
		return err
	}

	if err := m.authorize(principal, task); err != nil {
		return err
	}

	if err := m.repo.Tasks().Remove(ctx, task.ID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete task")
	}

	m.logger.Info("task deleted", "task_id", id.String(), "user_id", principal.UserID.String())

	return nil
}

// ListUsers returns a page of accounts. Admin only.
func (m *TaskManager) ListUsers(ctx context.Context, principal Principal, page, pageSize int) (*Page[*User], error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	page, pageSize = normalizePaging(page, pageSize)

	records, err := m.repo.Users().FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}

	return records, nil
}

// GetUser fetches a single account by id. Admin only.
func (m *TaskManager) GetUser(ctx context.Context, principal Principal, id uuid.UUID) (*User, error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	user, err := m.repo.Users().GetByIdentifier(ctx, id.String())
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to get user")
	}

	return user, nil
}

// DeleteUser removes an account and its tasks. Admin only.
func (m *TaskManager) DeleteUser(ctx context.Context, principal Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrAccessDenied
	}

	user, err := m.GetUser(ctx, principal, id)
	if err != nil {
		return err
	}

	if err := m.repo.Users().Remove(ctx, user.ID); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	m.logger.Info("user deleted", "user_id", id.String(), "actor_id", principal.UserID.String())

	return nil
}

// IsPrivileged reports whether the principal can act outside its own scope
func (m *TaskManager) IsPrivileged(principal Principal) bool {
	return principal.IsAdmin()
}

func (m *TaskManager) loadTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, err := m.repo.Tasks().GetWithOwner(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load task")
	}

	return task, nil
}

func (m *TaskManager) authorize(principal Principal, task *Task) error {
	if principal.IsAdmin() {
		return nil
	}

	if task.OwnedBy(principal.UserID) {
		return nil
	}

	return ErrAccessDenied
}
