package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/ledgersync/internal/config"
	"github.com/dvloznov/ledgersync/internal/console"
	"github.com/dvloznov/ledgersync/internal/logger"
	"github.com/dvloznov/ledgersync/internal/sheets"
	"github.com/dvloznov/ledgersync/internal/store"
)

// runTimeout keeps a hung remote call from blocking a scheduled run forever.
const runTimeout = 10 * time.Minute

// app is what every subcommand needs once configuration has loaded.
type app struct {
	cfg     *config.Configuration
	log     zerolog.Logger
	console *console.Console
}

// loadApp reads configuration. When required variables are missing it
// prints them and returns ok=false; the command then does no work.
func loadApp(con *console.Console) (*app, bool, error) {
	cfg, err := config.Load()
	if err != nil {
		if config.IsMissingVars(err) {
			con.Error("%v", err)
			return nil, false, nil
		}
		return nil, false, err
	}

	return &app{
		cfg:     cfg,
		log:     logger.New(cfg.LogLevel),
		console: con,
	}, true, nil
}

// runContext returns a context carrying the logger, bounded by runTimeout.
func (a *app) runContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, runTimeout)
	return logger.WithContext(ctx, a.log), cancel
}

func (a *app) openRepository(ctx context.Context) (*store.PostgresRepository, error) {
	repo, err := store.NewPostgresRepository(ctx, a.cfg.Supabase.URL, a.cfg.Supabase.ServiceRoleKey)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return repo, nil
}

func (a *app) openSheets(ctx context.Context) (*sheets.Client, error) {
	client, err := sheets.NewClient(ctx, []byte(a.cfg.Google.ServiceAccountJSON), a.cfg.Google.SheetID)
	if err != nil {
		return nil, fmt.Errorf("connecting to Google Sheets: %w", err)
	}
	return client, nil
}
