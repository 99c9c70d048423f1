package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBasics(t *testing.T) {
	err := Newf("fetch failed for %s", "abc123").
		Component("imagefetch").
		Category(CategoryImageFetch).
		Context("submission_id", "abc123").
		Build()
	require.Error(t, err)

	var ee *EnhancedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "fetch failed for abc123", ee.Error())
	assert.Equal(t, "imagefetch", ee.Component)
	assert.Equal(t, CategoryImageFetch, ee.Category)
	assert.False(t, ee.Timestamp.IsZero())

	v, ok := ee.GetContext("submission_id")
	require.True(t, ok)
	assert.Equal(t, "abc123", v)

	_, ok = ee.GetContext("missing")
	assert.False(t, ok)
}

func TestBuilderDefaults(t *testing.T) {
	err := New(NewStd("plain failure")).Build()

	var ee *EnhancedError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ComponentUnknown, ee.Component)
	assert.Equal(t, CategoryGeneric, ee.Category)
}

func TestBuildNilError(t *testing.T) {
	assert.Nil(t, New(nil).Component("x").Build())
}

func TestBuildPreservesExistingEnhancement(t *testing.T) {
	inner := Newf("db write failed").
		Component("datastore").
		Category(CategoryDatabase).
		Build()

	// Re-enhancing with nothing new must not re-wrap.
	rewrapped := New(inner).Build()
	assert.Same(t, inner, rewrapped)

	// Adding new metadata does wrap again.
	outer := New(inner).Component("scanner").Category(CategoryProcessing).Build()
	var ee *EnhancedError
	require.ErrorAs(t, outer, &ee)
	assert.Equal(t, "scanner", ee.Component)
}

func TestUnwrapReachesOriginal(t *testing.T) {
	wrapped := New(fmt.Errorf("read: %w", io.ErrUnexpectedEOF)).
		Component("imagefetch").
		Category(CategoryImageFetch).
		Build()

	assert.True(t, Is(wrapped, io.ErrUnexpectedEOF))
}

func TestIsComparesByCategory(t *testing.T) {
	a := Newf("first").Category(CategoryNetwork).Build()
	b := Newf("second, unrelated text").Category(CategoryNetwork).Build()
	c := Newf("third").Category(CategoryDatabase).Build()

	assert.True(t, Is(a, b), "same-category enhanced errors must match")
	assert.False(t, Is(a, c), "different categories must not match")
}

func TestJoinCollectsProblems(t *testing.T) {
	first := NewStd("first problem")
	second := NewStd("second problem")

	joined := Join(first, second)
	assert.True(t, Is(joined, first))
	assert.True(t, Is(joined, second))
	assert.Contains(t, joined.Error(), "first problem")
	assert.Contains(t, joined.Error(), "second problem")
}
