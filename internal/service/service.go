// Package service wires the datastore, Reddit client, media fetcher and
// scanner together and runs them.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/datastore"
	"github.com/nickofolas/reposterminator/internal/errors"
	"github.com/nickofolas/reposterminator/internal/imagefetch"
	"github.com/nickofolas/reposterminator/internal/logging"
	"github.com/nickofolas/reposterminator/internal/notification"
	"github.com/nickofolas/reposterminator/internal/observability"
	"github.com/nickofolas/reposterminator/internal/reddit"
	"github.com/nickofolas/reposterminator/internal/scanner"
)

// Run starts the repost detection loop and blocks until the context is
// canceled. Store or Reddit connection failures at startup are returned to
// the caller, which exits non-zero.
func Run(ctx context.Context, settings *conf.Settings) error {
	scan, store, err := setup(ctx, settings, true)
	if err != nil {
		return err
	}
	defer closeStore(store)

	logging.Info("Starting repost detection loop",
		"threshold", settings.Detection.Threshold,
		"max_matches", settings.Detection.MaxMatches)

	if err := scan.Run(ctx); err != nil && !isCanceled(err) {
		return err
	}
	logging.Info("Scan loop stopped")
	return nil
}

// Backfill performs a one-shot historical index of a single community,
// adding it to tracking first when needed.
func Backfill(ctx context.Context, settings *conf.Settings, community string) error {
	scan, store, err := setup(ctx, settings, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.SaveCommunity(community); err != nil {
		return err
	}
	return scan.Backfill(ctx, community)
}

// ListCommunities prints every tracked community and its lifecycle state.
func ListCommunities(settings *conf.Settings) error {
	store := datastore.New(settings)
	if store == nil {
		return errors.Newf("no database output is enabled").
			Component("service").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeStore(store)

	communities, err := store.GetCommunities()
	if err != nil {
		return err
	}
	if len(communities) == 0 {
		fmt.Println("No communities tracked")
		return nil
	}
	for _, community := range communities {
		state := "backfilling"
		if community.Indexed {
			state = "indexed"
		}
		fmt.Printf("%-24s %s\n", community.Name, state)
	}
	return nil
}

// setup performs the fatal-on-failure startup sequence: database, Reddit
// authentication, then the scanner and its collaborators.
func setup(ctx context.Context, settings *conf.Settings, withMonitoring bool) (*scanner.Scanner, datastore.Interface, error) {
	if err := conf.ValidateSettings(settings); err != nil {
		return nil, nil, err
	}

	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	redditClient, err := reddit.New(settings)
	if err != nil {
		closeStore(store)
		return nil, nil, err
	}
	if err := redditClient.Authenticate(ctx); err != nil {
		closeStore(store)
		return nil, nil, fmt.Errorf("failed to authenticate with Reddit: %w", err)
	}
	logging.Info("Reddit and database connections established")

	notifier, err := notification.New(settings)
	if err != nil {
		// Notifications are an extra, never fatal
		logging.Warn("Notifications disabled", "error", err)
	}

	var metrics *observability.ScannerMetrics
	if withMonitoring {
		registry := prometheus.NewRegistry()
		metrics, err = observability.NewScannerMetrics(registry)
		if err != nil {
			closeStore(store)
			return nil, nil, err
		}
		if settings.Monitor.Health.Enabled {
			endpoint, err := observability.NewEndpoint(settings, registry)
			if err != nil {
				closeStore(store)
				return nil, nil, err
			}
			endpoint.Start(ctx)
		}
	}

	scan, err := scanner.New(settings, store, redditClient, imagefetch.New(), notifier, metrics)
	if err != nil {
		closeStore(store)
		return nil, nil, err
	}
	return scan, store, nil
}

func closeStore(store datastore.Interface) {
	if err := store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

func isCanceled(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
