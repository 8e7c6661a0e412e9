package tasks_test

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tasks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUserTracker implements tasks.UserTracker
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByIdentifier(ctx context.Context, identifier string) (*tasks.User, error) {
	args := m.Called(ctx, identifier)
	if user, ok := args.Get(0).(*tasks.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *tasks.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSuccessfulLogin(ctx context.Context, user *tasks.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockUsers implements the subset of tasks.Users the code under test touches.
// The embedded interface covers the rest of the surface.
type MockUsers struct {
	mock.Mock
	tasks.Users
}

func (m *MockUsers) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*tasks.User, error) {
	args := m.Called(ctx, identifier)
	if user, ok := args.Get(0).(*tasks.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) ExistsByUsernameTx(ctx context.Context, tx bun.IDB, username string) (bool, error) {
	args := m.Called(ctx, tx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	args := m.Called(ctx, tx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *tasks.User, criteria ...repository.InsertCriteria) (*tasks.User, error) {
	args := m.Called(ctx, tx, record)
	if user, ok := args.Get(0).(*tasks.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) FindPage(ctx context.Context, page, pageSize int) (*tasks.Page[*tasks.User], error) {
	args := m.Called(ctx, page, pageSize)
	if result, ok := args.Get(0).(*tasks.Page[*tasks.User]); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTasks implements the subset of tasks.Tasks the code under test touches.
type MockTasks struct {
	mock.Mock
	tasks.Tasks
}

func (m *MockTasks) Create(ctx context.Context, record *tasks.Task, criteria ...repository.InsertCriteria) (*tasks.Task, error) {
	args := m.Called(ctx, record)
	if task, ok := args.Get(0).(*tasks.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTasks) GetWithOwner(ctx context.Context, id uuid.UUID) (*tasks.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*tasks.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTasks) Save(ctx context.Context, record *tasks.Task) (*tasks.Task, error) {
	args := m.Called(ctx, record)
	if task, ok := args.Get(0).(*tasks.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTasks) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTasks) FindPage(ctx context.Context, query tasks.TaskQuery) (*tasks.Page[*tasks.Task], error) {
	args := m.Called(ctx, query)
	if result, ok := args.Get(0).(*tasks.Page[*tasks.Task]); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRepositoryManager implements tasks.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
	users *MockUsers
	tasks *MockTasks
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		users: new(MockUsers),
		tasks: new(MockTasks),
	}
}

func (m *MockRepositoryManager) Validate() error {
	return nil
}

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() tasks.Users {
	return m.users
}

func (m *MockRepositoryManager) Tasks() tasks.Tasks {
	return m.tasks
}

// MockIdentity implements tasks.Identity
type MockIdentity struct {
	IDValue       string
	UsernameValue string
	EmailValue    string
	RolesValue    []tasks.Role
}

func (m MockIdentity) ID() string          { return m.IDValue }
func (m MockIdentity) Username() string    { return m.UsernameValue }
func (m MockIdentity) Email() string       { return m.EmailValue }
func (m MockIdentity) Roles() []tasks.Role { return m.RolesValue }

// testConfig implements tasks.Config
type testConfig struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	audience        []string
}

func (c testConfig) GetSigningKey() string {
	if c.signingKey == "" {
		return "test-signing-key-for-units"
	}
	return c.signingKey
}

func (c testConfig) GetSigningMethod() string { return "HS256" }
func (c testConfig) GetContextKey() string    { return "user" }

func (c testConfig) GetTokenExpiration() int {
	if c.tokenExpiration == 0 {
		return 1
	}
	return c.tokenExpiration
}

func (c testConfig) GetTokenLookup() string { return "header:Authorization" }
func (c testConfig) GetAuthScheme() string  { return "Bearer" }
func (c testConfig) GetIssuer() string      { return c.issuer }
func (c testConfig) GetAudience() []string  { return c.audience }
