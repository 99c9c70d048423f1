// Package reddit implements the Reddit API client used by the repost
// scanner: OAuth authentication, community listings, moderation actions and
// the bot account's inbox.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nickofolas/reposterminator/internal/conf"
	"github.com/nickofolas/reposterminator/internal/errors"
	"github.com/nickofolas/reposterminator/internal/logging"
)

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiBase  = "https://oauth.reddit.com"

	requestTimeout = 45 * time.Second

	// Tokens are refreshed slightly before Reddit expires them.
	tokenExpiryMargin = 1 * time.Minute
)

// Client talks to the Reddit API on behalf of the bot account.
type Client struct {
	settings  *conf.Settings
	userAgent string

	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	// overridable in tests
	tokenEndpoint string
	baseEndpoint  string
}

// New creates a Reddit client from the given settings. The connection is not
// tested until the first request; use Authenticate to verify credentials at
// startup.
func New(settings *conf.Settings) (*Client, error) {
	r := settings.Reddit
	if r.ClientID == "" || r.ClientSecret == "" || r.Username == "" || r.Password == "" {
		return nil, errors.Newf("reddit credentials are not configured").
			Component("reddit").
			Category(errors.CategoryConfiguration).
			Build()
	}

	userAgent := r.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("golang:%s:v1 (by /u/%s)", settings.Main.Name, r.Username)
	}

	// requests per minute to requests per second
	perSecond := rate.Limit(float64(r.RequestsPerMinute) / 60.0)

	return &Client{
		settings:      settings,
		userAgent:     userAgent,
		httpClient:    &http.Client{Timeout: requestTimeout},
		limiter:       rate.NewLimiter(perSecond, 5),
		log:           logging.ForService("reddit"),
		tokenEndpoint: tokenURL,
		baseEndpoint:  apiBase,
	}, nil
}

// Authenticate performs the OAuth password-grant flow and stores the access
// token for subsequent requests.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.settings.Reddit.Username)
	form.Set("password", c.settings.Reddit.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.settings.Reddit.ClientID, c.settings.Reddit.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(err).
			Component("reddit").
			Category(errors.CategoryNetwork).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf("token request failed with status %d: %s", resp.StatusCode, string(body)).
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Build()
	}

	var token struct {
		AccessToken string  `json:"access_token"`
		TokenType   string  `json:"token_type"`
		ExpiresIn   float64 `json:"expires_in"`
		Error       string  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return errors.New(err).
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Build()
	}
	if token.Error != "" || token.AccessToken == "" {
		return errors.Newf("authentication rejected: %s", token.Error).
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Build()
	}

	c.mu.Lock()
	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	c.mu.Unlock()

	c.log.Debug("Authenticated with Reddit", "expires_in", token.ExpiresIn)
	return nil
}

// ensureToken refreshes the access token when it is missing or near expiry.
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	valid := c.accessToken != "" && time.Until(c.tokenExpiry) > tokenExpiryMargin
	c.mu.Unlock()

	if valid {
		return nil
	}
	return c.Authenticate(ctx)
}

// do performs an authenticated API request. For GET requests params are sent
// as the query string, otherwise as a form-encoded body. When out is non-nil
// the response body is decoded into it as JSON.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	return c.request(ctx, method, path, params, out, true)
}

func (c *Client) request(ctx context.Context, method, path string, params url.Values, out any, allowRetry bool) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseEndpoint + path
	var body io.Reader
	if method == http.MethodGet {
		if len(params) > 0 {
			endpoint += "?" + params.Encode()
		}
	} else if params != nil {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	c.mu.Lock()
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	c.mu.Unlock()
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(err).
			Component("reddit").
			Category(errors.CategoryNetwork).
			Context("path", path).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized && allowRetry {
		// Token invalidated server-side, refresh once and retry
		if err := c.Authenticate(ctx); err != nil {
			return err
		}
		return c.request(ctx, method, path, params, out, false)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Newf("reddit API returned status %d for %s: %s",
			resp.StatusCode, path, string(respBody)).
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Context("status", resp.StatusCode).
			Context("path", path).
			Build()
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.New(err).
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Context("path", path).
			Build()
	}
	return nil
}
