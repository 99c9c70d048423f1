package fingerprint

import (
	"math/bits"

	"github.com/nickofolas/reposterminator/internal/datastore"
)

// DefaultThreshold is the similarity percentage a stored fingerprint must
// strictly exceed to count as a match.
const DefaultThreshold = 88

// Match pairs a stored fingerprint with its similarity to a candidate hash.
// Matches are ephemeral values consumed by the report composer and are never
// persisted.
type Match struct {
	Hash         uint64
	SubmissionID string
	Community    string
	Similarity   int
}

// Distance returns the Hamming distance between two hashes, 0..64.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similarity returns the integer percentage similarity between two hashes.
// Identical hashes score 100; the function is symmetric in its arguments.
func Similarity(a, b uint64) int {
	return (Bits - Distance(a, b)) * 100 / Bits
}

// FindMatches linearly scans stored fingerprints and returns every entry
// whose similarity to candidate strictly exceeds threshold. The scan is
// finite and restartable; each call produces a fresh slice.
func FindMatches(candidate uint64, stored []datastore.Fingerprint, threshold int) []Match {
	var matches []Match
	for i := range stored {
		hash := stored[i].HashValue()
		if similarity := Similarity(candidate, hash); similarity > threshold {
			matches = append(matches, Match{
				Hash:         hash,
				SubmissionID: stored[i].SubmissionID,
				Community:    stored[i].Community,
				Similarity:   similarity,
			})
		}
	}
	return matches
}
