// Package notification delivers optional operator push notifications when a
// repost report is filed. Delivery is best-effort; a failed push never
// affects detection.
package notification

import (
	"io"
	"log"
	"log/slog"
	"slices"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/logging"
)

const sendTimeout = 10 * time.Second

// Notifier sends push notifications via shoutrrr service URLs.
type Notifier struct {
	urls   []string
	sender *router.ServiceRouter
	log    *slog.Logger
}

// New creates a notifier for the configured service URLs. Returns nil when
// notifications are disabled so callers can pass the result around without a
// separate enabled flag.
func New(settings *conf.Settings) (*Notifier, error) {
	if !settings.Monitor.Notification.Enabled {
		return nil, nil
	}

	urls := slices.Clone(settings.Monitor.Notification.URLs)
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, err
	}
	sender.Timeout = sendTimeout
	sender.SetLogger(log.New(io.Discard, "", 0))

	return &Notifier{
		urls:   urls,
		sender: sender,
		log:    logging.ForService("notification"),
	}, nil
}

// Notify sends a message with the given title to every configured service.
// Failures are logged and swallowed.
func (n *Notifier) Notify(title, message string) {
	if n == nil || n.sender == nil {
		return
	}

	params := stypes.Params{}
	params.SetTitle(title)

	for _, err := range n.sender.Send(message, &params) {
		if err != nil {
			n.log.Warn("Push notification failed", "error", err)
		}
	}
}
