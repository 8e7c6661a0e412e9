package tasks

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RegisterAuthRoutes mounts the public registration and login endpoints
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("auth.register")
	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")
}

// RegisterTaskRoutes mounts the task CRUD endpoints behind the given
// middleware chain.
func RegisterTaskRoutes[T any](app router.Router[T], controller *TaskController, mw ...router.MiddlewareFunc) {
	app.Post("/tasks", controller.Create, mw...).SetName("tasks.create")
	app.Get("/tasks", controller.List, mw...).SetName("tasks.list")
	app.Get("/tasks/:id", controller.Get, mw...).SetName("tasks.get")
	app.Put("/tasks/:id", controller.Update, mw...).SetName("tasks.update")
	app.Delete("/tasks/:id", controller.Delete, mw...).SetName("tasks.delete")
}

// RegisterUserRoutes mounts the admin account endpoints behind the given
// middleware chain.
func RegisterUserRoutes[T any](app router.Router[T], controller *UsersController, mw ...router.MiddlewareFunc) {
	app.Get("/users", controller.List, mw...).SetName("users.list")
	app.Get("/users/:id", controller.Get, mw...).SetName("users.get")
	app.Delete("/users/:id", controller.Delete, mw...).SetName("users.delete")
}

type AuthControllerRoutes struct {
	Login    string
	Register string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Auther       Authenticator
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
		},
	}

	c.ErrorHandler = func(ctx router.Context, err error) error {
		return RenderError(ctx, c.Logger, err)
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

func WithAuthControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithAuthControllerAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAuthControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// RegistrationPayload is the register request body
type RegistrationPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone_number"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegistrationPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
			validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		)
	}, "Invalid registration payload")
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegistrationPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	var created *User

	req := RegisterUserMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Password: payload.Password,
		OnResponse: func(u *User) {
			created = u
		},
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	if err := registerUser.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("register user execute", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, OkResponse("User registered successfully", created))
}

// LoginPayload is the login request body
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	result, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("Login successful", result))
}

// TaskController serves the task CRUD endpoints
type TaskController struct {
	Logger       Logger
	Manager      *TaskManager
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

func NewTaskController(manager *TaskManager, contextKey string) *TaskController {
	c := &TaskController{
		Logger:     defLogger{},
		Manager:    manager,
		ContextKey: contextKey,
	}

	c.ErrorHandler = func(ctx router.Context, err error) error {
		return RenderError(ctx, c.Logger, err)
	}

	return c
}

func (a *TaskController) WithLogger(logger Logger) *TaskController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// TaskPayload is the task create/update request body
type TaskPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    *int       `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
}

// Validate will run validation rules
func (r TaskPayload) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Description, validation.Length(0, 2000)),
			validation.Field(&r.Status, validation.By(validateTaskStatus)),
		)
	}, "Invalid task payload")
}

func validateTaskStatus(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !TaskStatus(strings.ToUpper(s)).IsValid() {
		return errors.New("must be one of PENDING, IN_PROGRESS, COMPLETED", errors.CategoryValidation)
	}
	return nil
}

func (r TaskPayload) toRequest() TaskRequest {
	req := TaskRequest{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
	}

	if r.Status != "" {
		status := TaskStatus(strings.ToUpper(r.Status))
		req.Status = &status
	}

	return req
}

// principal resolves the authenticated caller against the account store on
// every request. Token claims only identify the account; roles and existence
// come from storage, so revoked or deleted accounts stop here.
func (a *TaskController) principal(ctx router.Context) (Principal, error) {
	return resolveRouterPrincipal(ctx, a.ContextKey, a.Manager)
}

func (a *TaskController) Create(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(TaskPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	record, err := a.Manager.CreateTask(ctx.Context(), principal, payload.toRequest())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, OkResponse("Task created successfully", record))
}

func (a *TaskController) List(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	query := TaskQuery{
		Page:     queryInt(ctx, "page", 0),
		PageSize: queryInt(ctx, "size", DefaultPageSize),
		SortBy:   ctx.Query("sortBy", "created_at"),
		SortDir:  ctx.Query("sortDir", "desc"),
	}

	if raw := ctx.Query("status", ""); raw != "" {
		status := TaskStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			return a.ErrorHandler(ctx, errors.New("unknown status filter", errors.CategoryValidation).
				WithMetadata(map[string]any{"status": raw}))
		}
		query.Status = &status
	}

	page, err := a.Manager.ListTasks(ctx.Context(), principal, query)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("", page))
}

func (a *TaskController) Get(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := paramUUID(ctx, "id")
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	record, err := a.Manager.GetTask(ctx.Context(), principal, id)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("", record))
}

func (a *TaskController) Update(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := paramUUID(ctx, "id")
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(TaskPayload)
	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	record, err := a.Manager.UpdateTask(ctx.Context(), principal, id, payload.toRequest())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("Task updated successfully", record))
}

func (a *TaskController) Delete(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := paramUUID(ctx, "id")
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Manager.DeleteTask(ctx.Context(), principal, id); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("Task deleted successfully", nil))
}

// UsersController serves the admin account endpoints
type UsersController struct {
	Logger       Logger
	Manager      *TaskManager
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

func NewUsersController(manager *TaskManager, contextKey string) *UsersController {
	c := &UsersController{
		Logger:     defLogger{},
		Manager:    manager,
		ContextKey: contextKey,
	}

	c.ErrorHandler = func(ctx router.Context, err error) error {
		return RenderError(ctx, c.Logger, err)
	}

	return c
}

func (a *UsersController) principal(ctx router.Context) (Principal, error) {
	return resolveRouterPrincipal(ctx, a.ContextKey, a.Manager)
}

func resolveRouterPrincipal(ctx router.Context, key string, manager *TaskManager) (Principal, error) {
	claims, ok := GetRouterClaims(ctx, key)
	if !ok {
		return Principal{}, ErrTokenMalformed
	}

	identifier := claims.Username()
	if identifier == "" {
		identifier = claims.UserID()
	}

	return manager.ResolvePrincipal(ctx.Context(), identifier)
}

func (a *UsersController) List(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	page, err := a.Manager.ListUsers(
		ctx.Context(),
		principal,
		queryInt(ctx, "page", 0),
		queryInt(ctx, "size", DefaultPageSize),
	)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("", page))
}

func (a *UsersController) Get(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := paramUUID(ctx, "id")
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	user, err := a.Manager.GetUser(ctx.Context(), principal, id)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("", user))
}

func (a *UsersController) Delete(ctx router.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	id, err := paramUUID(ctx, "id")
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := a.Manager.DeleteUser(ctx.Context(), principal, id); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, OkResponse("User deleted successfully", nil))
}

func queryInt(ctx router.Context, name string, def int) int {
	raw := ctx.Query(name, "")
	if raw == "" {
		return def
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return val
}

func paramUUID(ctx router.Context, name string) (uuid.UUID, error) {
	raw := ctx.Param(name, "")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid id parameter", errors.CategoryBadInput).
			WithMetadata(map[string]any{"id": raw})
	}

	return id, nil
}
