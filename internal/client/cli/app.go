package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dsemenov/dosetrack/internal/client/config"
	"github.com/dsemenov/dosetrack/internal/client/httpclient"
	"github.com/dsemenov/dosetrack/internal/client/services"
	"github.com/dsemenov/dosetrack/internal/client/storage"
	"github.com/dsemenov/dosetrack/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	store       *storage.Store
	remote      httpclient.Remote
	authService *services.AuthService
	tracker     *services.Tracker
	syncer      *services.Syncer
	scheduler   *services.Scheduler
	reader      *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	remote := httpclient.NewClient(cfg.ServerEndpointAddr)

	writer := services.NewWriter(store.DB)
	tracker := services.NewTracker(writer, store.Rows)
	authService := services.NewAuthService(remote, store.Metadata)
	syncer := services.NewSyncer(store.DB, store.Metadata, store.Outbox, store.Rows, remote, logger)
	scheduler := services.NewScheduler(syncer, store.Metadata, logger, cfg.SyncInterval, cfg.ShutdownSyncTimeout)

	return &App{
		config:      cfg,
		store:       store,
		remote:      remote,
		authService: authService,
		tracker:     tracker,
		syncer:      syncer,
		scheduler:   scheduler,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run syncs once at startup, keeps the background sync loop going while the
// REPL is open, and runs the final shutdown sync before closing the store.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	a.scheduler.RunAtStartup(ctx)
	go a.scheduler.Start(ctx)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))

	cancel()
	a.scheduler.RunAtShutdown()

	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated(context.Background())
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "logged in"
	}
	return "logged out"
}
