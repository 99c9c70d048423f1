package fingerprint

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickofolas/reposterminator/internal/datastore"
	"github.com/nickofolas/reposterminator/internal/errors"
)

// gradientPNG renders a horizontal luminance gradient and returns it encoded
// as PNG.
func gradientPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 4)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "failed to encode test image")
	return buf.Bytes()
}

// checkerboardPNG renders a high-frequency checkerboard, structurally very
// different from the gradient.
func checkerboardPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "failed to encode test image")
	return buf.Bytes()
}

func TestComputeDeterminism(t *testing.T) {
	data := gradientPNG(t)

	first, err := Compute(data)
	require.NoError(t, err, "first compute failed")
	second, err := Compute(data)
	require.NoError(t, err, "second compute failed")

	assert.Equal(t, first, second, "identical bytes must yield the identical hash")
}

func TestComputeDistinguishesContent(t *testing.T) {
	gradient, err := Compute(gradientPNG(t))
	require.NoError(t, err)
	checkerboard, err := Compute(checkerboardPNG(t))
	require.NoError(t, err)

	assert.NotEqual(t, gradient, checkerboard, "structurally different images must not collide")
}

func TestComputeRejectsNonImage(t *testing.T) {
	_, err := Compute([]byte("this is not an image"))
	require.Error(t, err, "expected undecodable bytes to be rejected")
	assert.True(t, errors.Is(err, ErrUndecodable), "expected ErrUndecodable, got %v", err)
}

func TestSimilarityReflexive(t *testing.T) {
	for _, hash := range []uint64{0, 0xffffffffffffffff, 0xdeadbeefcafebabe} {
		assert.Equal(t, 100, Similarity(hash, hash), "identical hashes must score 100")
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := uint64(0xdeadbeefcafebabe)
	b := uint64(0x0123456789abcdef)
	assert.Equal(t, Similarity(a, b), Similarity(b, a), "similarity must be symmetric")
}

func TestSimilarityThresholdBoundary(t *testing.T) {
	base := uint64(0)

	// 8 differing bits: floor(56*100/64) = 87, not a match at threshold 88
	eightBits := uint64(0xff)
	assert.Equal(t, 8, Distance(base, eightBits))
	assert.Equal(t, 87, Similarity(base, eightBits))

	// 7 differing bits: floor(57*100/64) = 89, a match
	sevenBits := uint64(0x7f)
	assert.Equal(t, 7, Distance(base, sevenBits))
	assert.Equal(t, 89, Similarity(base, sevenBits))

	stored := []datastore.Fingerprint{
		{Hash: datastore.StoredHash(eightBits), SubmissionID: "below", Community: "pics"},
		{Hash: datastore.StoredHash(sevenBits), SubmissionID: "above", Community: "pics"},
	}

	matches := FindMatches(base, stored, DefaultThreshold)
	require.Len(t, matches, 1, "only the 7-bit difference may match")
	assert.Equal(t, "above", matches[0].SubmissionID)
	assert.Equal(t, 89, matches[0].Similarity)
}

func TestFindMatchesRestartable(t *testing.T) {
	stored := []datastore.Fingerprint{
		{Hash: datastore.StoredHash(0), SubmissionID: "a", Community: "pics"},
		{Hash: datastore.StoredHash(1), SubmissionID: "b", Community: "pics"},
		{Hash: datastore.StoredHash(0xffffffffffffffff), SubmissionID: "c", Community: "pics"},
	}

	first := FindMatches(0, stored, DefaultThreshold)
	second := FindMatches(0, stored, DefaultThreshold)

	require.Len(t, first, 2, "exact and one-bit-off hashes must match")
	assert.Equal(t, first, second, "each call must produce the same fresh result")
	assert.Equal(t, 100, first[0].Similarity, "identical hash must score 100")
}

func TestFindMatchesEmptyStore(t *testing.T) {
	assert.Empty(t, FindMatches(42, nil, DefaultThreshold), "no stored fingerprints, no matches")
}
