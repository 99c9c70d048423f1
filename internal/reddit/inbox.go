package reddit

import (
	"context"
	"net/http"
	"net/url"
)

// UnreadMessages returns the unread items in the bot account's inbox, oldest
// state preserved; callers mark each message read once handled.
func (c *Client) UnreadMessages(ctx context.Context) ([]Message, error) {
	params := url.Values{}
	params.Set("limit", "100")

	var listing thing
	if err := c.do(ctx, http.MethodGet, "/message/unread", params, &listing); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(listing.Data.Children))
	for i := range listing.Data.Children {
		data := &listing.Data.Children[i].Data
		messages = append(messages, Message{
			Fullname:  data.Fullname,
			Subject:   data.Subject,
			Body:      data.Body,
			Community: data.Community,
		})
	}
	return messages, nil
}

// MarkRead marks a single inbox item as read.
func (c *Client) MarkRead(ctx context.Context, messageFullname string) error {
	params := url.Values{}
	params.Set("id", messageFullname)
	return c.do(ctx, http.MethodPost, "/api/read_message", params, nil)
}
