// Package scanner drives repost detection: it walks every tracked community
// once per pass, backfills newly tracked communities from their historical
// top listings, live-scans indexed communities from /new, and handles the
// inbox messages that start and stop tracking.
package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/datastore"
	"github.com/nickofolas/reposterminator/internal/errors"
	"github.com/nickofolas/reposterminator/internal/imagefetch"
	"github.com/nickofolas/reposterminator/internal/logging"
	"github.com/nickofolas/reposterminator/internal/notification"
	"github.com/nickofolas/reposterminator/internal/observability"
	"github.com/nickofolas/reposterminator/internal/reddit"
)

// idleDelay is how long the loop sleeps when no communities are tracked,
// between inbox polls.
const idleDelay = 30 * time.Second

// Scanner owns the single sequential control flow of the service. The dedup
// set and the community list are owned exclusively by this loop and require
// no synchronization.
type Scanner struct {
	settings *conf.Settings
	store    datastore.Interface
	reddit   reddit.API
	media    imagefetch.Interface
	notifier *notification.Notifier
	metrics  *observability.ScannerMetrics
	log      *slog.Logger

	// seen holds every submission id ever written to the store. It is the
	// authoritative fast-path dedup guard, seeded at startup and updated on
	// every write.
	seen        map[string]struct{}
	communities []datastore.Community
}

// New constructs a scanner, seeding the dedup set and community list from
// the store.
func New(
	settings *conf.Settings,
	store datastore.Interface,
	redditAPI reddit.API,
	media imagefetch.Interface,
	notifier *notification.Notifier,
	metrics *observability.ScannerMetrics,
) (*Scanner, error) {
	s := &Scanner{
		settings: settings,
		store:    store,
		reddit:   redditAPI,
		media:    media,
		notifier: notifier,
		metrics:  metrics,
		log:      logging.ForService("scanner"),
		seen:     make(map[string]struct{}),
	}

	ids, err := store.GetSubmissionIDs()
	if err != nil {
		return nil, errors.New(err).
			Component("scanner").
			Category(errors.CategoryState).
			Build()
	}
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}

	if err := s.refreshCommunities(); err != nil {
		return nil, err
	}

	s.log.Info("Scanner initialized",
		"known_submissions", len(s.seen),
		"tracked_communities", len(s.communities))
	return s, nil
}

// Run executes the scanning loop until the context is canceled. No error
// from processing one submission aborts the loop; the only termination paths
// are context cancellation and fatal startup failures handled before Run.
func (s *Scanner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if len(s.communities) == 0 {
			// Nothing tracked yet, poll the inbox for invitations
			s.HandleInbox(ctx)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idleDelay):
			}
			continue
		}

		s.HandleInbox(ctx)
		// The slice is copied because inbox handling during the pass can
		// refresh the community list under us.
		pass := make([]datastore.Community, len(s.communities))
		copy(pass, s.communities)

		for i := range pass {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.HandleInbox(ctx)

			community := &pass[i]
			if !community.Indexed {
				if err := s.Backfill(ctx, community.Name); err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return err
					}
					s.log.Error("Backfill failed, will retry next pass",
						"community", community.Name, "error", err)
				}
			} else {
				if err := s.scanNew(ctx, community.Name); err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return err
					}
					s.log.Error("New-submission scan failed",
						"community", community.Name, "error", err)
				}
			}
		}
	}
}

// Backfill seeds the fingerprint store from a community's top submissions
// over the all-time, past-year and past-month windows, without reporting.
// On clean completion the community is marked indexed.
func (s *Scanner) Backfill(ctx context.Context, community string) error {
	for _, window := range reddit.TopWindows {
		submissions, err := s.reddit.TopSubmissions(ctx, community, window)
		if err != nil {
			return err
		}
		s.log.Debug("Indexing top submissions",
			"community", community, "window", window, "count", len(submissions))
		for i := range submissions {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.Process(ctx, &submissions[i], false)
		}
	}

	if err := s.store.MarkCommunityIndexed(community); err != nil {
		return err
	}
	if err := s.refreshCommunities(); err != nil {
		return err
	}
	s.log.Info("Fully indexed community", "community", community)
	return nil
}

// scanNew processes a community's newest submissions with reporting enabled.
func (s *Scanner) scanNew(ctx context.Context, community string) error {
	submissions, err := s.reddit.NewSubmissions(ctx, community)
	if err != nil {
		return err
	}
	for i := range submissions {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Process(ctx, &submissions[i], true)
	}
	s.log.Debug("Scanned community for new posts", "community", community)
	return nil
}

// refreshCommunities reloads the in-memory community list from the store.
func (s *Scanner) refreshCommunities() error {
	communities, err := s.store.GetCommunities()
	if err != nil {
		return errors.New(err).
			Component("scanner").
			Category(errors.CategoryState).
			Build()
	}
	s.communities = communities
	if s.metrics != nil {
		s.metrics.SetTrackedCommunities(len(communities))
	}
	s.log.Debug("Updated community list", "count", len(communities))
	return nil
}

// Communities returns the current in-memory community list.
func (s *Scanner) Communities() []datastore.Community {
	return s.communities
}
