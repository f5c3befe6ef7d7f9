package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/studylist/studylist-sync/internal/model"
)

func TestTypeForURL(t *testing.T) {
	cases := map[string]model.MaterialType{
		"https://www.youtube.com/watch?v=abc":        model.TypeVideo,
		"https://youtu.be/abc":                       model.TypeVideo,
		"https://vimeo.com/123":                      model.TypeVideo,
		"https://www.goodreads.com/book/show/1":      model.TypeBook,
		"https://books.google.com/books?id=x":        model.TypeBook,
		"https://open.spotify.com/episode/xyz":       model.TypePodcast,
		"https://podcasts.apple.com/us/podcast/a":    model.TypePodcast,
		"https://example.com/article":                model.TypeWebpage,
		"https://blog.youtube.com.evil.com/phishing": model.TypeWebpage,
		"not a url ::":                               model.TypeWebpage,
	}
	for raw, want := range cases {
		assert.Equal(t, want, TypeForURL(raw), raw)
	}
}

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestClassifyTitleFallbackOrder(t *testing.T) {
	doc := parse(t, `<html><head>
        <title>Doc Title</title>
        <meta property="og:title" content="OG Title">
    </head><body><h1>  Heading  </h1></body></html>`)
	info := Classify("https://example.com/a", doc)
	assert.Equal(t, "Heading", info.Title)

	doc = parse(t, `<html><head>
        <title>Doc Title</title>
        <meta property="og:title" content="OG Title">
    </head><body></body></html>`)
	info = Classify("https://example.com/a", doc)
	assert.Equal(t, "OG Title", info.Title)

	doc = parse(t, `<html><head><title>Doc Title</title></head><body></body></html>`)
	info = Classify("https://example.com/a", doc)
	assert.Equal(t, "Doc Title", info.Title)
}

func TestClassifyVideoMetadata(t *testing.T) {
	doc := parse(t, `<html><head>
        <meta property="og:title" content="Go Concurrency Patterns">
        <meta property="og:description" content="A talk">
        <meta property="og:image" content="https://i.ytimg.com/vi/x/hq.jpg">
        <meta name="author" content="GopherCon">
    </head><body></body></html>`)

	info := Classify("https://www.youtube.com/watch?v=abc", doc)
	assert.Equal(t, model.TypeVideo, info.Type)
	assert.Equal(t, "Go Concurrency Patterns", info.Title)
	assert.Equal(t, "A talk", info.Info.Description)
	assert.Equal(t, "https://i.ytimg.com/vi/x/hq.jpg", info.Info.Thumbnail)
	assert.Equal(t, "GopherCon", info.Info.ChannelName)
}

func TestClassifyPodcastEpisode(t *testing.T) {
	doc := parse(t, `<html><head>
        <meta property="og:title" content="Episode 42">
    </head><body></body></html>`)
	info := Classify("https://open.spotify.com/episode/xyz", doc)
	assert.Equal(t, model.TypePodcast, info.Type)
	assert.Equal(t, "Episode 42", info.Info.EpisodeTitle)
}

func TestClassifyNilDocument(t *testing.T) {
	info := Classify("https://goodreads.com/book/show/1", nil)
	assert.Equal(t, model.TypeBook, info.Type)
	assert.Empty(t, info.Title)
}
