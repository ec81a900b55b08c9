// Package server initializes and runs the fileshare server.
// It builds the configured storage backends, wires the services into the
// HTTP API and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/broker"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/activity"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/chat"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fileshare/internal/server/rest"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	repos           repomanager.RepositoryManager
	publisher       *broker.ActivityPublisher
	userService     *services.UserService
	fileService     *services.FileService
	activityService *services.ActivityService
	chatService     *services.ChatService
}

// seams for tests
var (
	newRepositoryManager = repomanager.New
	newActivityPublisher = broker.NewActivityPublisher
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	repos, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, repos: repos}

	var sink services.ActivitySink
	if c.AMQPURL != "" {
		p, err := newActivityPublisher(c.AMQPURL, c.AMQPExchange)
		if err != nil {
			// the activity log works without its sink
			logger.Warn(ctx, "activity sink disabled", "error", err)
		} else {
			app.publisher = p
			sink = p
		}
	}

	app.activityService = services.NewActivityService(activity.NewMemoryRepository(c.ActivityLogLimit), sink, logger)
	app.userService = services.NewUserService(repos.Users(), app.activityService, logger, c)
	app.fileService = services.NewFileService(repos.Files(), describer(ctx, c, logger), app.activityService, logger)
	app.chatService = services.NewChatService(chat.NewMemoryRepository(), logger)

	if err := app.bootstrap(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

// describer picks the description source. Only the name based fallback is
// available; a configured API key is reported so it is not silently ignored.
func describer(ctx context.Context, c *config.Config, logger logging.Logger) services.Describer {
	if c.DescriptionAPIKey != "" {
		logger.Warn(ctx, "description API key set but generated descriptions are not available, using file names")
	}
	return services.FallbackDescriber{}
}

func (app *App) bootstrap(ctx context.Context) error {
	if err := app.activityService.Append(ctx, models.ActivitySystemInit, services.SystemInitText); err != nil {
		return fmt.Errorf("activity init error: %w", err)
	}
	if app.config.SeedsDemoUser() {
		if app.config.StoreBackend != config.BackendMemory {
			app.logger.Warn(ctx, "seeding demo account into a persistent store",
				"email", services.DemoUserEmail, "store", app.config.StoreBackend)
		}
		if err := app.userService.SeedDemoUser(ctx); err != nil {
			return fmt.Errorf("seed demo user: %w", err)
		}
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger,
		app.userService, app.fileService, app.activityService, app.chatService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "close", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}

// Close releases the storage backends and the activity sink.
func (app *App) Close() error {
	var err error
	if app.publisher != nil {
		err = app.publisher.Close()
		app.publisher = nil
	}
	if app.repos != nil {
		if cerr := app.repos.Close(); cerr != nil && err == nil {
			err = cerr
		}
		app.repos = nil
	}
	return err
}
