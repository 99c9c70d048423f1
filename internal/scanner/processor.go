package scanner

import (
	"context"
	"time"

	"github.com/nickofolas/reposterminator/internal/datastore"
	"github.com/nickofolas/reposterminator/internal/fingerprint"
	"github.com/nickofolas/reposterminator/internal/imagefetch"
	"github.com/nickofolas/reposterminator/internal/reddit"
)

// result labels for the processed-submission metric
const (
	resultIndexed = "indexed"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

// Process runs one submission through the detection pipeline. Text posts and
// already-known ids return immediately with no side effects. Every other
// submission ends up with exactly one bookkeeping row and an entry in the
// dedup set, whether or not fingerprinting succeeded, so it is never
// processed again. Failures are logged and contained here; nothing
// propagates to the scan loop.
func (s *Scanner) Process(ctx context.Context, submission *reddit.Submission, reportEnabled bool) {
	if submission.IsSelf {
		return
	}
	if _, known := s.seen[submission.ID]; known {
		return
	}

	start := time.Now()
	mediaURL := imagefetch.NormalizeURL(submission.URL)

	outcome := s.fingerprintAndMatch(ctx, submission, mediaURL, reportEnabled)
	processed := outcome == resultIndexed

	record := datastore.Submission{
		ID:            submission.ID,
		Community:     submission.Community,
		CreatedUTC:    submission.CreatedUTC,
		Author:        submission.Author,
		Title:         submission.Title,
		URL:           submission.URL,
		Score:         submission.Score,
		AuthorDeleted: submission.AuthorDeleted(),
		Processed:     processed,
	}
	if err := s.store.SaveSubmission(&record); err != nil {
		s.log.Error("Failed to save submission record",
			"submission", submission.ID, "error", err)
	}

	// The id goes into the dedup set unconditionally so a submission is
	// never retried, even after a failed write.
	s.seen[submission.ID] = struct{}{}

	if s.metrics != nil {
		s.metrics.RecordSubmissionProcessed(submission.Community, outcome)
		s.metrics.RecordProcessDuration(time.Since(start))
	}
}

// fingerprintAndMatch fetches and fingerprints the media, looks for matches
// among the community's stored fingerprints, reports when allowed, and
// persists the new fingerprint. It returns the result label for the
// processed-submission metric; only resultIndexed marks the submission as
// fully processed.
func (s *Scanner) fingerprintAndMatch(ctx context.Context, submission *reddit.Submission, mediaURL string, reportEnabled bool) string {
	fetched := s.media.Fetch(ctx, mediaURL)
	if fetched.Skip != imagefetch.SkipNone {
		s.log.Debug("Skipping submission media",
			"submission", submission.ID, "reason", fetched.Skip.String())
		if s.metrics != nil {
			s.metrics.RecordMediaFetchSkip(submission.Community, fetched.Skip.String())
		}
		return resultSkipped
	}

	hash, err := fingerprint.Compute(fetched.Data)
	if err != nil {
		s.log.Debug("Could not fingerprint media",
			"submission", submission.ID, "error", err)
		return resultFailed
	}

	stored, err := s.store.GetFingerprints(submission.Community)
	if err != nil {
		s.log.Error("Failed to load stored fingerprints",
			"community", submission.Community, "error", err)
		return resultFailed
	}

	matches := fingerprint.FindMatches(hash, stored, s.settings.Detection.Threshold)
	if s.metrics != nil && len(matches) > 0 {
		s.metrics.RecordMatches(submission.Community, len(matches))
	}

	// More matches than the cap looks like a template flood rather than a
	// repost cascade; reporting is suppressed but the fingerprint is kept.
	if reportEnabled && len(matches) >= 1 && len(matches) <= s.settings.Detection.MaxMatches {
		if err := s.report(ctx, submission, matches); err != nil {
			s.log.Error("Failed to report submission",
				"submission", submission.ID, "error", err)
			return resultFailed
		}
	}

	record := datastore.Fingerprint{
		Hash:         datastore.StoredHash(hash),
		SubmissionID: submission.ID,
		Community:    submission.Community,
	}
	if err := s.store.SaveFingerprint(&record); err != nil {
		s.log.Error("Failed to save fingerprint",
			"submission", submission.ID, "error", err)
		return resultFailed
	}
	if s.metrics != nil {
		s.metrics.RecordFingerprintStored(submission.Community)
	}

	return resultIndexed
}
