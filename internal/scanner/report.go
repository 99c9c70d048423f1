package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nickofolas/reposterminator/internal/fingerprint"
	"github.com/nickofolas/reposterminator/internal/reddit"
)

const (
	rowTemplate = "/u/%s | %s | [URL](%s) | [%s](https://redd.it/%s) | %d | %s | %d%%\n"

	tableTemplate = "User | Date | Image | Title | Karma | Status | Similarity\n" +
		":---|:---|:---|:---|:---|:---|:---|:---\n%s"

	reportDateLayout = "Mon, Jan 02, 2006 at 15:04:05"
)

// Match original-post status values
const (
	statusActive  = "Active"
	statusRemoved = "Removed"
	statusDeleted = "Deleted"
)

// report flags the submission to moderators and posts the supporting
// evidence table as a reply. The reply is then removed as a moderator
// (without a spam flag) so only the mod team sees it; a failed removal is
// logged and swallowed, the posted reply is the durable side effect.
func (s *Scanner) report(ctx context.Context, submission *reddit.Submission, matches []fingerprint.Match) error {
	var rows strings.Builder
	active := 0

	for i := range matches {
		match := &matches[i]
		original, err := s.store.GetSubmission(match.SubmissionID)
		if err != nil {
			s.log.Warn("Matched submission missing from store",
				"submission", match.SubmissionID, "error", err)
			continue
		}

		live, err := s.reddit.SubmissionByID(ctx, original.ID)
		if err != nil {
			return err
		}

		status := statusActive
		switch {
		case live.Removed():
			status = statusRemoved
		case live.AuthorDeleted():
			status = statusDeleted
		default:
			active++
		}

		createdAt := time.Unix(int64(original.CreatedUTC), 0)
		fmt.Fprintf(&rows, rowTemplate,
			original.Author,
			createdAt.Format(reportDateLayout),
			original.URL,
			original.Title,
			original.ID,
			live.Score,
			status,
			match.Similarity)
	}

	reason := fmt.Sprintf("Possible repost ( %d matches | %d removed/deleted )",
		len(matches), len(matches)-active)
	if err := s.reddit.Report(ctx, submission.Fullname, reason); err != nil {
		return err
	}

	replyFullname, err := s.reddit.Reply(ctx, submission.Fullname, fmt.Sprintf(tableTemplate, rows.String()))
	if err != nil {
		return err
	}

	// Best-effort: hide the evidence reply from ordinary viewers
	if err := s.reddit.RemoveComment(ctx, replyFullname, false); err != nil {
		s.log.Debug("Could not remove evidence reply as moderator",
			"comment", replyFullname, "error", err)
	}

	if s.metrics != nil {
		s.metrics.RecordReportFiled(submission.Community)
	}
	s.notifier.Notify(
		fmt.Sprintf("Repost reported in r/%s", submission.Community),
		fmt.Sprintf("%s | %d matches", submission.Permalink(), len(matches)))

	s.log.Info("Reported repost",
		"submission", submission.Permalink(),
		"community", submission.Community,
		"matches", len(matches))
	return nil
}
