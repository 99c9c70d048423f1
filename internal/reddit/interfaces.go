package reddit

import "context"

// API defines what the scanner needs from the Reddit client.
type API interface {
	Authenticate(ctx context.Context) error

	TopSubmissions(ctx context.Context, community, window string) ([]Submission, error)
	NewSubmissions(ctx context.Context, community string) ([]Submission, error)
	SubmissionByID(ctx context.Context, id string) (Submission, error)

	Report(ctx context.Context, fullname, reason string) error
	Reply(ctx context.Context, fullname, body string) (string, error)
	RemoveComment(ctx context.Context, commentFullname string, spam bool) error
	AcceptModInvite(ctx context.Context, community string) error

	UnreadMessages(ctx context.Context) ([]Message, error)
	MarkRead(ctx context.Context, messageFullname string) error
}

// compile-time interface check
var _ API = (*Client)(nil)
