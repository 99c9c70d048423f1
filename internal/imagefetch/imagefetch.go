// Package imagefetch retrieves submission media over HTTP.
//
// Fetch outcomes are modeled as an explicit result: either image bytes, or a
// named skip reason. A URL without a recognized image extension and a dead
// link are frequent, expected outcomes for submissions and are not errors.
package imagefetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/nickofolas/reposterminator/internal/logging"
)

// imageExtensions are the URL extensions accepted for fingerprinting.
// Everything else, including GIF, is treated as non-image media.
var imageExtensions = []string{".jpg", ".jpeg", ".png"}

const (
	fetchTimeout = 30 * time.Second

	// maxImageBytes caps the response size read into memory.
	maxImageBytes = 20 << 20

	// Failed URLs are remembered so dead media is not re-fetched every time
	// a community listing yields it again before the dedup set catches up.
	negativeCacheTTL     = 1 * time.Hour
	negativeCacheCleanup = 10 * time.Minute
)

// SkipReason names why a URL was not fetched as an image.
type SkipReason int

const (
	SkipNone        SkipReason = iota // media was fetched
	SkipNotImage                      // URL does not carry a recognized image extension
	SkipUnavailable                   // media could not be retrieved
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipNotImage:
		return "not-image"
	case SkipUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result is the outcome of a media fetch. Data is only valid when Skip is
// SkipNone.
type Result struct {
	Data []byte
	Skip SkipReason
}

// Interface defines what the submission processor needs from a media fetcher.
type Interface interface {
	Fetch(ctx context.Context, url string) Result
}

// Fetcher retrieves media over HTTP with a negative-result cache.
type Fetcher struct {
	client   *http.Client
	negative *cache.Cache
	log      *slog.Logger
}

// New creates a media fetcher.
func New() *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: fetchTimeout},
		negative: cache.New(negativeCacheTTL, negativeCacheCleanup),
		log:      logging.ForService("imagefetch"),
	}
}

// HasImageExtension reports whether url carries a recognized image extension.
// The check is a substring match so query-string suffixes do not defeat it.
func HasImageExtension(url string) bool {
	lowered := strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.Contains(lowered, ext) {
			return true
		}
	}
	return false
}

// NormalizeURL lowercases url and canonicalizes the imgur mobile mirror to
// its primary image domain.
func NormalizeURL(url string) string {
	return strings.ReplaceAll(strings.ToLower(url), "m.imgur.com", "i.imgur.com")
}

// Fetch retrieves the media at url. The returned Result carries either the
// raw bytes or the reason the URL was skipped.
func (f *Fetcher) Fetch(ctx context.Context, url string) Result {
	if !HasImageExtension(url) {
		return Result{Skip: SkipNotImage}
	}

	if _, found := f.negative.Get(url); found {
		return Result{Skip: SkipUnavailable}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		f.log.Debug("Failed to build media request", "url", url, "error", err)
		return Result{Skip: SkipUnavailable}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debug("Media fetch failed", "url", url, "error", err)
		f.negative.SetDefault(url, struct{}{})
		return Result{Skip: SkipUnavailable}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		f.log.Debug("Media fetch returned non-OK status", "url", url, "status", resp.StatusCode)
		f.negative.SetDefault(url, struct{}{})
		return Result{Skip: SkipUnavailable}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		f.log.Debug("Failed to read media body", "url", url, "error", err)
		f.negative.SetDefault(url, struct{}{})
		return Result{Skip: SkipUnavailable}
	}

	return Result{Data: data}
}
