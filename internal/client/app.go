// Package client wires the buildpad CLI together: local cache, remote store
// backend and the sync service, all picked from configuration.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dspolyakov/buildpad/internal/auth"
	"github.com/dspolyakov/buildpad/internal/client/cache"
	"github.com/dspolyakov/buildpad/internal/client/config"
	"github.com/dspolyakov/buildpad/internal/client/repositories/ideas"
	"github.com/dspolyakov/buildpad/internal/client/repositories/projects"
	"github.com/dspolyakov/buildpad/internal/client/services"
	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/logging"
	"github.com/dspolyakov/buildpad/internal/merge"
	"github.com/dspolyakov/buildpad/internal/remote"
	"github.com/dspolyakov/buildpad/internal/remote/dynamo"
	"github.com/dspolyakov/buildpad/internal/remote/inmemory"
	"github.com/dspolyakov/buildpad/internal/remote/postgres"
)

type App struct {
	config *config.Config
	logger logging.Logger
	sync   *services.SyncService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	projectStore, ideaStore, err := buildStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db, err := cache.Open(ctx, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}

	svc := services.NewSyncService(
		projects.NewSQLiteRepository(db),
		ideas.NewSQLiteRepository(db),
		projectStore, ideaStore,
		logger, cfg.CallTimeout,
	)

	return &App{config: cfg, logger: logger, sync: svc}, nil
}

func buildStores(ctx context.Context, cfg *config.Config) (merge.Store[remote.ProjectRecord], merge.Store[remote.IdeaRecord], error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return inmemory.NewProjectStore(), inmemory.NewIdeaStore(), nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres init error: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, nil, fmt.Errorf("postgres migrate error: %w", err)
		}
		return postgres.NewProjectStore(db), postgres.NewIdeaStore(db), nil

	case config.BackendDynamo:
		api, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
			Region:    cfg.DynamoRegion,
			Endpoint:  cfg.DynamoEndpoint,
			AccessKey: cfg.DynamoAccessKey,
			SecretKey: cfg.DynamoSecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dynamo init error: %w", err)
		}
		return dynamo.NewProjectStore(api, cfg.DynamoProjectsTable),
			dynamo.NewIdeaStore(api, cfg.DynamoIdeasTable), nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", common.ErrUnknownBackend, cfg.Backend)
	}
}

// Run executes one full sync pass and prints a short summary.
func (app *App) Run(ctx context.Context) error {

	ownerID, err := auth.OwnerID(app.config.SessionToken)
	if err != nil {
		return fmt.Errorf("cannot resolve owner: %w", err)
	}

	res, err := app.sync.Sync(ctx, ownerID)
	if err != nil {
		return err
	}

	fmt.Printf("synced %d projects, %d ideas\n", len(res.Projects), len(res.Ideas))
	if !res.Clean() {
		fmt.Printf("degraded: projects %+v, ideas %+v\n", res.ProjectReport, res.IdeaReport)
	}
	return nil
}
