package reddit

// deletedAuthor is the placeholder Reddit substitutes for removed accounts.
const deletedAuthor = "[deleted]"

// Submission is one Reddit link or text post.
type Submission struct {
	ID                string  `json:"id"`
	Fullname          string  `json:"name"`
	Community         string  `json:"subreddit"`
	Title             string  `json:"title"`
	Author            string  `json:"author"`
	URL               string  `json:"url"`
	Score             int     `json:"score"`
	CreatedUTC        float64 `json:"created_utc"`
	IsSelf            bool    `json:"is_self"`
	RemovedByCategory string  `json:"removed_by_category"`
}

// Removed reports whether the submission has been taken down.
func (s *Submission) Removed() bool {
	return s.RemovedByCategory != ""
}

// AuthorDeleted reports whether the submitting account no longer exists.
func (s *Submission) AuthorDeleted() bool {
	return s.Author == deletedAuthor
}

// Permalink returns the short link for the submission.
func (s *Submission) Permalink() string {
	return "https://redd.it/" + s.ID
}

// Message is one inbox item: a direct message or a moderation notification.
type Message struct {
	Fullname  string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Community string `json:"subreddit"`
}

// thing is the kind/data envelope Reddit wraps every API object in.
type thing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []child `json:"children"`
		After    string  `json:"after"`
	} `json:"data"`
}

type child struct {
	Kind string `json:"kind"`
	Data submissionOrMessage `json:"data"`
}

// submissionOrMessage is the superset of fields used from listing children.
type submissionOrMessage struct {
	Submission
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
