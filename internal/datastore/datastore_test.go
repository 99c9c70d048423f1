package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickofolas/reposterminator/internal/conf"
)

// newTestStore opens a SQLite store backed by a file in a per-test temp dir.
func newTestStore(t *testing.T) Interface {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "test.db")

	store := New(settings)
	require.NotNil(t, store)
	require.NoError(t, store.Open(), "failed to open test database")
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNewSelectsBackend(t *testing.T) {
	sqliteSettings := &conf.Settings{}
	sqliteSettings.Output.SQLite.Enabled = true
	assert.IsType(t, &SQLiteStore{}, New(sqliteSettings))

	mysqlSettings := &conf.Settings{}
	mysqlSettings.Output.MySQL.Enabled = true
	assert.IsType(t, &MySQLStore{}, New(mysqlSettings))

	assert.Nil(t, New(&conf.Settings{}))
}

func TestCommunityLifecycle(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveCommunity("pics"))
	require.NoError(t, store.SaveCommunity("cats"))

	communities, err := store.GetCommunities()
	require.NoError(t, err)
	require.Len(t, communities, 2)
	for _, c := range communities {
		assert.False(t, c.Indexed, "communities start unindexed")
	}

	require.NoError(t, store.MarkCommunityIndexed("pics"))
	communities, err = store.GetCommunities()
	require.NoError(t, err)
	indexed := map[string]bool{}
	for _, c := range communities {
		indexed[c.Name] = c.Indexed
	}
	assert.True(t, indexed["pics"])
	assert.False(t, indexed["cats"])

	require.NoError(t, store.DeleteCommunity("pics"))
	communities, err = store.GetCommunities()
	require.NoError(t, err)
	require.Len(t, communities, 1)
	assert.Equal(t, "cats", communities[0].Name)
}

func TestSaveCommunityIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveCommunity("pics"))
	require.NoError(t, store.MarkCommunityIndexed("pics"))

	// Re-adding must neither error nor reset the indexed flag.
	require.NoError(t, store.SaveCommunity("pics"))

	communities, err := store.GetCommunities()
	require.NoError(t, err)
	require.Len(t, communities, 1)
	assert.True(t, communities[0].Indexed)
}

func TestSubmissionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	submission := Submission{
		ID:         "abc123",
		Community:  "pics",
		CreatedUTC: 1600000000,
		Author:     "alice",
		Title:      "sunset",
		URL:        "https://i.imgur.com/a.jpg",
		Score:      1500,
		Processed:  true,
	}
	require.NoError(t, store.SaveSubmission(&submission))

	got, err := store.GetSubmission("abc123")
	require.NoError(t, err)
	assert.Equal(t, submission, got)

	_, err = store.GetSubmission("missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "missing rows are reported as not found")
}

func TestGetSubmissionIDs(t *testing.T) {
	store := newTestStore(t)

	ids, err := store.GetSubmissionIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.SaveSubmission(&Submission{ID: "one", Community: "pics"}))
	require.NoError(t, store.SaveSubmission(&Submission{ID: "two", Community: "pics"}))

	ids, err = store.GetSubmissionIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, ids)
}

func TestFingerprintsScopedByCommunity(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveFingerprint(&Fingerprint{
		Hash: StoredHash(0xdeadbeef), SubmissionID: "one", Community: "pics",
	}))
	require.NoError(t, store.SaveFingerprint(&Fingerprint{
		Hash: StoredHash(0xcafef00d), SubmissionID: "two", Community: "cats",
	}))

	fingerprints, err := store.GetFingerprints("pics")
	require.NoError(t, err)
	require.Len(t, fingerprints, 1)
	assert.Equal(t, "one", fingerprints[0].SubmissionID)
	assert.Equal(t, uint64(0xdeadbeef), fingerprints[0].HashValue())

	fingerprints, err = store.GetFingerprints("dogs")
	require.NoError(t, err)
	assert.Empty(t, fingerprints)
}

func TestHashRoundTripHighBit(t *testing.T) {
	store := newTestStore(t)

	// A hash with the sign bit set must survive the signed storage column.
	const hash = uint64(0xFFFFFFFFFFFFFFFF)
	require.NoError(t, store.SaveFingerprint(&Fingerprint{
		Hash: StoredHash(hash), SubmissionID: "one", Community: "pics",
	}))

	fingerprints, err := store.GetFingerprints("pics")
	require.NoError(t, err)
	require.Len(t, fingerprints, 1)
	assert.Equal(t, hash, fingerprints[0].HashValue())
}

func TestOperationsBeforeOpen(t *testing.T) {
	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = "unopened.db"
	store := New(settings)

	assert.Error(t, store.SaveSubmission(&Submission{ID: "x"}))
	assert.Error(t, store.SaveFingerprint(&Fingerprint{SubmissionID: "x"}))
	assert.Error(t, store.Close())
}
