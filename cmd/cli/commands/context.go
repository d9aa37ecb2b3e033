package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// The Sheets client and the database are connected on first use since most runs need neither.
type AppContext struct {
	Env     string
	Verbose bool
	Cfg     *config.Config
	Logger  *zap.Logger
	Ctx     context.Context

	sheetsClient *sheetsclient.Client
	database     *postgres.DB
}

// SheetsClient returns the Google Sheets client, running the OAuth flow on first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}
	if app.Cfg.Sheets == nil {
		return nil, fmt.Errorf("sheets configuration is missing from roster_config")
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}

// HasDatabase reports whether an archive database is configured
func (app *AppContext) HasDatabase() bool {
	return app.Cfg.DatabaseURL != ""
}

// Database connects to the archive database and applies pending migrations on first use
func (app *AppContext) Database() (*postgres.DB, error) {
	if app.database != nil {
		return app.database, nil
	}
	if !app.HasDatabase() {
		return nil, fmt.Errorf("no archive database configured (set databaseURL or DATABASE_URL)")
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Debug("Database initialized successfully")

	app.database = database
	return database, nil
}

// Close releases any connections opened by the commands
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
		app.database = nil
	}
}
