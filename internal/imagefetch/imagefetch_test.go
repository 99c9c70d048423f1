package imagefetch

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasImageExtension(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://i.imgur.com/abc.jpg", true},
		{"https://i.imgur.com/abc.JPG", true},
		{"https://i.imgur.com/abc.jpeg", true},
		{"https://i.imgur.com/abc.png?width=640", true},
		{"https://i.imgur.com/abc.gif", false},
		{"https://i.imgur.com/abc.gifv", false},
		{"https://example.com/page", false},
		{"https://example.com/video.mp4", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HasImageExtension(tc.url), "url %q", tc.url)
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://i.imgur.com/abc.jpg",
		NormalizeURL("https://M.imgur.com/ABC.jpg"),
		"mirror domain must canonicalize and case must fold")
	assert.Equal(t, "https://example.com/x.png",
		NormalizeURL("https://EXAMPLE.com/X.PNG"))
}

func TestFetchReturnsBytes(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	f := New()
	result := f.Fetch(t.Context(), server.URL+"/image.png")

	require.Equal(t, SkipNone, result.Skip, "expected successful fetch")
	assert.Equal(t, payload, result.Data)
}

func TestFetchSkipsUnrecognizedExtension(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	f := New()
	result := f.Fetch(t.Context(), server.URL+"/animation.gif")

	assert.Equal(t, SkipNotImage, result.Skip)
	assert.Nil(t, result.Data)
	assert.Zero(t, hits.Load(), "non-image URLs must not be fetched at all")
}

func TestFetchNegativeCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New()
	url := server.URL + "/missing.jpg"

	first := f.Fetch(t.Context(), url)
	second := f.Fetch(t.Context(), url)

	assert.Equal(t, SkipUnavailable, first.Skip)
	assert.Equal(t, SkipUnavailable, second.Skip)
	assert.Equal(t, int32(1), hits.Load(), "second fetch must be served by the negative cache")
}

func TestSkipReasonString(t *testing.T) {
	assert.Equal(t, "none", SkipNone.String())
	assert.Equal(t, "not-image", SkipNotImage.String())
	assert.Equal(t, "unavailable", SkipUnavailable.String())
}
