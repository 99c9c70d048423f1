package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// Report files a moderation report against the thing identified by fullname.
func (c *Client) Report(ctx context.Context, fullname, reason string) error {
	params := url.Values{}
	params.Set("thing_id", fullname)
	params.Set("reason", reason)
	params.Set("api_type", "json")
	return c.do(ctx, http.MethodPost, "/api/report", params, nil)
}

// Reply posts a comment under the thing identified by fullname and returns
// the new comment's fullname.
func (c *Client) Reply(ctx context.Context, fullname, body string) (string, error) {
	params := url.Values{}
	params.Set("thing_id", fullname)
	params.Set("text", body)
	params.Set("api_type", "json")

	var resp struct {
		JSON struct {
			Errors [][]any `json:"errors"`
			Data   struct {
				Things []struct {
					Kind string `json:"kind"`
					Data struct {
						Name string `json:"name"`
					} `json:"data"`
				} `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/comment", params, &resp); err != nil {
		return "", err
	}
	if len(resp.JSON.Errors) > 0 {
		return "", errors.Newf("comment rejected: %v", resp.JSON.Errors).
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Build()
	}
	if len(resp.JSON.Data.Things) == 0 {
		return "", errors.Newf("comment response contained no thing").
			Component("reddit").
			Category(errors.CategoryRedditAPI).
			Build()
	}
	return resp.JSON.Data.Things[0].Data.Name, nil
}

// RemoveComment performs the moderator remove action on a comment, hiding it
// from ordinary viewers. With spam=false the comment is not flagged as spam.
// Used to keep report evidence visible to moderators only.
func (c *Client) RemoveComment(ctx context.Context, commentFullname string, spam bool) error {
	params := url.Values{}
	params.Set("id", commentFullname)
	params.Set("spam", strconv.FormatBool(spam))
	return c.do(ctx, http.MethodPost, "/api/remove", params, nil)
}

// AcceptModInvite accepts a pending moderator invitation for community.
func (c *Client) AcceptModInvite(ctx context.Context, community string) error {
	params := url.Values{}
	params.Set("api_type", "json")
	path := fmt.Sprintf("/r/%s/api/accept_moderator_invite", url.PathEscape(community))
	return c.do(ctx, http.MethodPost, path, params, nil)
}
