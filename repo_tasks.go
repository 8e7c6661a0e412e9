package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultPageSize is the page window used when the caller does not set one
var DefaultPageSize = 10

// MaxPageSize caps the page window a caller can request
var MaxPageSize = 100

// taskSortColumns whitelists the columns a caller may sort by. Anything
// else falls back to created_at.
var taskSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"deadline":   "deadline",
	"title":      "title",
	"priority":   "priority",
	"status":     "status",
}

// Tasks is the tasks repository surface
type Tasks interface {
	repository.Repository[*Task]

	Create(ctx context.Context, record *Task, criteria ...repository.InsertCriteria) (*Task, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Task, criteria ...repository.InsertCriteria) (*Task, error)
	GetWithOwner(ctx context.Context, id uuid.UUID) (*Task, error)
	GetWithOwnerTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Task, error)
	Save(ctx context.Context, record *Task) (*Task, error)
	SaveTx(ctx context.Context, tx bun.IDB, record *Task) (*Task, error)
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
	FindPage(ctx context.Context, query TaskQuery) (*Page[*Task], error)
	FindPageTx(ctx context.Context, tx bun.IDB, query TaskQuery) (*Page[*Task], error)
}

type taskRepo struct {
	repository.Repository[*Task]
	db *bun.DB
}

var (
	_ Tasks                        = (*taskRepo)(nil)
	_ repository.Repository[*Task] = (*taskRepo)(nil)
)

func NewTasksRepository(db *bun.DB) Tasks {
	repo := repository.NewRepository[*Task](db, repository.ModelHandlers[*Task]{
		NewRecord: func() *Task { return &Task{} },
		GetID: func(t *Task) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Task, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &taskRepo{
		Repository: repo,
		db:         db,
	}
}

func (r *taskRepo) Create(ctx context.Context, record *Task, criteria ...repository.InsertCriteria) (*Task, error) {
	return r.CreateTx(ctx, r.db, record, criteria...)
}

func (r *taskRepo) CreateTx(ctx context.Context, tx bun.IDB, record *Task, criteria ...repository.InsertCriteria) (*Task, error) {
	prepareTaskDefaults(record)
	return r.Repository.CreateTx(ctx, tx, record, criteria...)
}

// GetWithOwner loads a task with its owning user joined in, so responses can
// carry the owner's username without a second query
func (r *taskRepo) GetWithOwner(ctx context.Context, id uuid.UUID) (*Task, error) {
	return r.GetWithOwnerTx(ctx, r.db, id)
}

func (r *taskRepo) GetWithOwnerTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Task, error) {
	record := &Task{}

	err := tx.NewSelect().
		Model(record).
		Relation("User").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

// Save persists the full record, refreshing its updated_at stamp
func (r *taskRepo) Save(ctx context.Context, record *Task) (*Task, error) {
	return r.SaveTx(ctx, r.db, record)
}

func (r *taskRepo) SaveTx(ctx context.Context, tx bun.IDB, record *Task) (*Task, error) {
	now := time.Now()
	record.UpdatedAt = &now

	_, err := tx.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)

	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *taskRepo) Remove(ctx context.Context, id uuid.UUID) error {
	return r.RemoveTx(ctx, r.db, id)
}

func (r *taskRepo) RemoveTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*Task)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *taskRepo) FindPage(ctx context.Context, query TaskQuery) (*Page[*Task], error) {
	return r.FindPageTx(ctx, r.db, query)
}

func (r *taskRepo) FindPageTx(ctx context.Context, tx bun.IDB, query TaskQuery) (*Page[*Task], error) {
	page, pageSize := normalizePaging(query.Page, query.PageSize)

	records := []*Task{}

	q := tx.NewSelect().
		Model(&records).
		Relation("User")

	if query.OwnerID != nil {
		q = q.Where("?TableAlias.user_id = ?", *query.OwnerID)
	}

	if query.Status != nil {
		q = q.Where("?TableAlias.status = ?", *query.Status)
	}

	column, dir := resolveTaskSort(query.SortBy, query.SortDir)
	q = q.OrderExpr("?.? ?", bun.Ident("tsk"), bun.Ident(column), bun.Safe(dir))

	total, err := q.
		Limit(pageSize).
		Offset(page * pageSize).
		ScanAndCount(ctx)

	if err != nil {
		return nil, err
	}

	return NewPage(records, total, page, pageSize), nil
}

func prepareTaskDefaults(record *Task) {
	if record == nil {
		return
	}

	if record.Status == "" {
		record.Status = StatusPending
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.CreatedAt == nil {
		now := time.Now()
		record.CreatedAt = &now
		record.UpdatedAt = &now
	}
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}

func resolveTaskSort(sortBy, sortDir string) (string, string) {
	column, ok := taskSortColumns[strings.ToLower(strings.TrimSpace(sortBy))]
	if !ok {
		column = "created_at"
	}

	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(sortDir), "asc") {
		dir = "ASC"
	}

	return column, dir
}
