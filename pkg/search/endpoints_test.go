package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBingParams(t *testing.T) {
	params := BingParams("cats", 56)

	assert.Equal(t, "cats", params.Get("q"))
	assert.Equal(t, "A", params.Get("form"))
	assert.Equal(t, "+filterui:face-face", params.Get("qft"))
	assert.Equal(t, "56", params.Get("first"))
	assert.Equal(t, "28", params.Get("count"))
}

func TestGoogleParams(t *testing.T) {
	params := GoogleParams("dogs", 40)

	assert.Equal(t, "dogs", params.Get("q"))
	assert.Equal(t, "isch", params.Get("tbm"))
	assert.Equal(t, "itp:face", params.Get("tbs"))
	assert.Equal(t, "40", params.Get("start"))
	assert.Empty(t, params.Get("count"))
}

func TestBuildURL(t *testing.T) {
	t.Run("plain base", func(t *testing.T) {
		u, err := url.Parse(buildURL("https://example.com/search", url.Values{"q": {"a b"}}))
		require.NoError(t, err)
		assert.Equal(t, "/search", u.Path)
		assert.Equal(t, "a b", u.Query().Get("q"))
	})

	t.Run("base with existing query", func(t *testing.T) {
		u, err := url.Parse(buildURL("https://example.com/search?hl=en", url.Values{"q": {"x"}}))
		require.NoError(t, err)
		assert.Equal(t, "en", u.Query().Get("hl"))
		assert.Equal(t, "x", u.Query().Get("q"))
	})
}

func TestResolveLink(t *testing.T) {
	page, err := url.Parse("https://www.bing.com/images/search?q=cats")
	require.NoError(t, err)

	tests := []struct {
		name string
		link string
		want string
	}{
		{"absolute", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"root relative", "/th?id=1", "https://www.bing.com/th?id=1"},
		{"protocol relative", "//tse1.mm.bing.net/th?id=2", "https://tse1.mm.bing.net/th?id=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLink(page, tt.link))
		})
	}

	assert.Equal(t, "/th?id=1", resolveLink(nil, "/th?id=1"))
}
