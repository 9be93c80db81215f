// Package server composes the foodlog server: it picks the record and object
// backends from config, migrates the schema, and runs the HTTP API next to
// the gRPC health endpoint until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/dbx"
	"github.com/dmitrijs2005/foodlog/internal/logging"
	"github.com/dmitrijs2005/foodlog/internal/objectstore"
	"github.com/dmitrijs2005/foodlog/internal/objectstore/localstore"
	"github.com/dmitrijs2005/foodlog/internal/objectstore/s3store"
	"github.com/dmitrijs2005/foodlog/internal/server/config"
	"github.com/dmitrijs2005/foodlog/internal/server/httpapi"
	"github.com/dmitrijs2005/foodlog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/foodlog/internal/server/services"
	"github.com/dmitrijs2005/foodlog/internal/telemetry"

	gs "github.com/dmitrijs2005/foodlog/internal/server/grpc"
)

const serviceName = "foodlog"

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
	grpcServer *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, level))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openRecordStore(c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.New(c.RecordBackend)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	store, filesRoot, err := openObjectStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	policy, err := attach.ParsePolicy(c.UploadFailurePolicy)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	linker := attach.New(store, attach.WithPolicy(policy), attach.WithLogger(logger))

	handler := httpapi.NewHandler(
		services.NewUserService(db, rm, linker, c, logger),
		services.NewMealService(db, rm, linker, c.MealsBucket, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, httpapi.RouterOptions{
		Secret:    []byte(c.SecretKey),
		FilesRoot: filesRoot,
		DB:        db,
	})

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewServer(c.EndpointAddrHTTP, router, logger),
		grpcServer: gs.NewHealthServer(c.EndpointAddrGRPC, db, gs.DefaultPingInterval, logger),
	}, nil
}

func openRecordStore(c *config.Config) (*sql.DB, error) {
	switch c.RecordBackend {
	case config.RecordBackendSQLite:
		return dbx.OpenSQLite(c.SQLitePath)
	default:
		return dbx.OpenPostgres(c.DatabaseDSN)
	}
}

// openObjectStore returns the store and, for the local backend, the
// directory the HTTP server should expose under /files/.
func openObjectStore(ctx context.Context, c *config.Config) (objectstore.Store, string, error) {
	switch c.ObjectBackend {
	case config.ObjectBackendLocal:
		s, err := localstore.New(c.LocalStorageRoot, c.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return s, s.Root(), nil
	default:
		s, err := s3store.New(ctx, s3store.Options{
			Region:        c.S3Region,
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.PublicBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	}
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

// Run blocks until ctx is cancelled, a signal arrives, or one of the servers
// fails; either server failing stops the other.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	shutdown, err := telemetry.Setup(ctx, serviceName, app.config.OtelEndpoint)
	if err != nil {
		app.logger.Warn(ctx, "tracing disabled", "error", err)
	}

	var wg sync.WaitGroup

	for _, run := range []func(context.Context) error{app.httpServer.Run, app.grpcServer.Run} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				cancelFunc()
			}
		}()
	}

	wg.Wait()

	if err := shutdown(context.Background()); err != nil {
		app.logger.Warn(ctx, "flushing traces failed", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
