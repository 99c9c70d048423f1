package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// TopWindows are the historical listing windows scanned during backfill,
// processed in this order.
var TopWindows = []string{"all", "year", "month"}

// TopSubmissions lists a community's top submissions for one time window
// ("all", "year" or "month"), score-sorted as Reddit yields them.
func (c *Client) TopSubmissions(ctx context.Context, community, window string) ([]Submission, error) {
	params := url.Values{}
	params.Set("t", window)
	params.Set("limit", strconv.Itoa(c.settings.Reddit.ListingLimit))

	var listing thing
	path := fmt.Sprintf("/r/%s/top", url.PathEscape(community))
	if err := c.do(ctx, http.MethodGet, path, params, &listing); err != nil {
		return nil, err
	}
	return submissionsFromListing(&listing), nil
}

// NewSubmissions lists a community's newest submissions, recency-sorted.
func (c *Client) NewSubmissions(ctx context.Context, community string) ([]Submission, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.settings.Reddit.ListingLimit))

	var listing thing
	path := fmt.Sprintf("/r/%s/new", url.PathEscape(community))
	if err := c.do(ctx, http.MethodGet, path, params, &listing); err != nil {
		return nil, err
	}
	return submissionsFromListing(&listing), nil
}

// SubmissionByID fetches a single submission with its live score, removal
// and author state.
func (c *Client) SubmissionByID(ctx context.Context, id string) (Submission, error) {
	var listing thing
	path := "/by_id/t3_" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &listing); err != nil {
		return Submission{}, err
	}

	submissions := submissionsFromListing(&listing)
	if len(submissions) == 0 {
		return Submission{}, errors.Newf("submission %s not found", id).
			Component("reddit").
			Category(errors.CategoryNotFound).
			Build()
	}
	return submissions[0], nil
}

func submissionsFromListing(listing *thing) []Submission {
	submissions := make([]Submission, 0, len(listing.Data.Children))
	for i := range listing.Data.Children {
		submissions = append(submissions, listing.Data.Children[i].Data.Submission)
	}
	return submissions
}
