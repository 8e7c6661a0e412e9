package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-tasks"
	"github.com/goliatone/go-tasks/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	auth   tasks.Authenticator
	auther *tasks.RouteAuthenticator
	repo   tasks.RepositoryManager
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("taskd"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if app.Config().GetApp().GetDebug() {
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	if err := WithRoutes(ctx, app); err != nil {
		panic(err)
	}

	app.srv.Serve(app.Config().GetServer().GetAddr())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		log.Fatal(err)
		return err
	}

	persistence.RegisterModel((*tasks.User)(nil))
	persistence.RegisterModel((*tasks.Task)(nil))

	cfg := app.Config().GetPersistence()
	dialect := sqlitedialect.New()
	client, err := persistence.New(cfg, db, dialect)
	if err != nil {
		log.Fatal(err)
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(tasks.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = tasks.NewRepositoryManager(client.DB())

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: app.Config().GetApp().GetDebug(),
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	srv.Router().Get("/health", func(ctx router.Context) error {
		return ctx.JSON(router.StatusOK, map[string]string{
			"status": "ok",
			"name":   app.Config().GetApp().GetName(),
		})
	})

	app.srv = srv

	return nil
}

type userTrackerAdapter struct {
	users tasks.Users
}

func (a userTrackerAdapter) GetByIdentifier(ctx context.Context, identifier string) (*tasks.User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a userTrackerAdapter) TrackAttemptedLogin(ctx context.Context, user *tasks.User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a userTrackerAdapter) TrackSuccessfulLogin(ctx context.Context, user *tasks.User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

func WithRoutes(ctx context.Context, app *App) error {
	cfg := app.Config().GetAuth()

	if err := app.repo.Validate(); err != nil {
		return err
	}

	userProvider := tasks.NewUserProvider(userTrackerAdapter{users: app.repo.Users()})
	userProvider.WithLogger(app.GetLogger("auth:prv"))

	authenticator := tasks.NewAuthenticator(userProvider, cfg)
	authenticator.WithLogger(app.GetLogger("auth:authz"))
	app.auth = authenticator

	httpAuth, err := tasks.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return err
	}
	httpAuth.Logger = app.GetLogger("auth:http")
	app.auther = httpAuth

	manager := tasks.NewTaskManager(app.repo).
		WithLogger(app.GetLogger("tasks"))

	api := app.srv.Router().Group("/api")

	tasks.RegisterAuthRoutes(api,
		tasks.WithAuthControllerRepo(app.repo),
		tasks.WithAuthControllerAuther(authenticator),
		tasks.WithAuthControllerLogger(app.GetLogger("auth:ctrl")),
	)

	protected := httpAuth.ProtectedRoute(cfg, httpAuth.MakeAPIAuthErrorHandler(false))
	admin := httpAuth.AdminRoute(cfg, httpAuth.MakeAPIAuthErrorHandler(false))

	taskController := tasks.NewTaskController(manager, cfg.GetContextKey()).
		WithLogger(app.GetLogger("tasks:ctrl"))
	tasks.RegisterTaskRoutes(api, taskController, protected)

	tasks.RegisterUserRoutes(api, tasks.NewUsersController(manager, cfg.GetContextKey()), admin)

	return nil
}

func WaitExitSignal() os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(
		sigs,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	return <-sigs
}
