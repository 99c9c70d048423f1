// model.go this code defines the data model for the application
package datastore

// Community tracks the indexing lifecycle of a single monitored subreddit.
// A row exists only while the community is tracked; Indexed flips to true
// exactly once, after the historical backfill completes.
type Community struct {
	Name    string `gorm:"primaryKey"`
	Indexed bool
}

// Submission is the bookkeeping row written exactly once per observed
// submission, whether or not fingerprinting succeeded.
type Submission struct {
	ID            string `gorm:"primaryKey"`
	Community     string `gorm:"index:idx_submissions_community"`
	CreatedUTC    float64
	Author        string
	Title         string
	URL           string
	Score         int
	AuthorDeleted bool
	Processed     bool
}

// Fingerprint is one indexed image hash, scoped and queried per community.
// Rows are append-only, never mutated or deleted.
//
// The hash is a 64-bit difference hash stored as a signed integer so that
// both SQLite and MySQL accept the full value range; callers convert with
// HashValue/StoredHash.
type Fingerprint struct {
	ID           uint  `gorm:"primaryKey"`
	Hash         int64 `gorm:"index:idx_fingerprints_hash"`
	SubmissionID string
	Community    string `gorm:"index:idx_fingerprints_community"`
}

// HashValue returns the stored hash as the unsigned value used for matching.
func (f *Fingerprint) HashValue() uint64 {
	return uint64(f.Hash)
}

// StoredHash converts a fingerprint hash to its database representation.
func StoredHash(hash uint64) int64 {
	return int64(hash)
}
