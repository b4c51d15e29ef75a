package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/starschool/records/internal/app/export"
	"github.com/starschool/records/internal/app/repositories"
	"github.com/starschool/records/internal/app/services"
	"github.com/starschool/records/internal/config"
	"github.com/starschool/records/internal/db"
	"github.com/starschool/records/internal/pkg/logger"
)

// App holds the wired application: configuration, the store handle, and the
// service layer. It is built once at startup and torn down by Shutdown.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	DB       *db.SchoolDB
	Repos    *repositories.Repositories
	Services *services.Services
	Snapshot *export.SnapshotWriter
	CSV      *export.CSVExporter
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// NewApp wires every dependency: config, logger, store, repositories,
// snapshot writer, and services.
func NewApp(configPath string) (*App, error) {
	cfg, lgr, err := LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	schoolDB, err := db.NewSchoolDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	snapshot, err := export.NewSnapshotWriter(cfg.Snapshot.Dir)
	if err != nil {
		schoolDB.Close()
		return nil, fmt.Errorf("failed to setup snapshot writer: %w", err)
	}

	csvExporter, err := export.NewCSVExporter(cfg.Export.Dir)
	if err != nil {
		schoolDB.Close()
		return nil, fmt.Errorf("failed to setup csv exporter: %w", err)
	}

	repos := repositories.NewRepositories(schoolDB)
	svcs := services.NewServices(schoolDB, repos, snapshot)

	return &App{
		Config:   cfg,
		Logger:   lgr,
		DB:       schoolDB,
		Repos:    repos,
		Services: svcs,
		Snapshot: snapshot,
		CSV:      csvExporter,
	}, nil
}

// Shutdown runs the durability checkpoint: a final full-state snapshot, a
// timestamped copy of the store file, then the handle is closed. Snapshot
// and backup failures are reported but do not stop the sequence.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	roster, err := a.Services.Registrar.LoadRoster(ctx)
	if err != nil {
		a.Logger.Error().Err(err).Msg("Shutdown: failed to load state for final snapshot")
		firstErr = err
	} else if err := a.Snapshot.Refresh(ctx, roster); err != nil {
		a.Logger.Error().Err(err).Msg("Shutdown: final snapshot failed")
		firstErr = err
	}

	if _, err := a.DB.Backup(a.Config.Backup.Dir); err != nil {
		a.Logger.Error().Err(err).Msg("Shutdown: database backup failed")
		if firstErr == nil {
			firstErr = err
		}
	}

	if err := a.DB.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Shutdown: failed to close database")
		if firstErr == nil {
			firstErr = err
		}
	}

	a.Logger.Info().Msg("Shutdown complete")
	return firstErr
}
