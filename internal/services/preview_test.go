package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/printforge/printforge-backend/internal/repos/testutil"
)

const previewPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="3DBenchy">
<meta property="og:description" content="The jolly 3D printing torture-test.">
<meta property="og:image" content="/images/benchy.png">
<meta property="article:author" content="CreativeTools">
</head>
<body>
<h1>Should not win over og:title</h1>
<span>1.2k likes</span>
<span>500 downloads</span>
<span>3.5M views</span>
</body>
</html>`

func TestPreviewFetcherExtractsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(previewPage))
	}))
	defer srv.Close()

	fetcher := NewPreviewFetcher(testutil.Logger(t))
	result := fetcher.Fetch(context.Background(), srv.URL+"/models/1-benchy")

	if result.Partial {
		t.Fatalf("unexpected partial result: %+v", result)
	}
	if result.Title != "3DBenchy" {
		t.Fatalf("title = %q", result.Title)
	}
	if result.Description != "The jolly 3D printing torture-test." {
		t.Fatalf("description = %q", result.Description)
	}
	if result.Image != srv.URL+"/images/benchy.png" {
		t.Fatalf("image = %q", result.Image)
	}
	if result.Author != "CreativeTools" {
		t.Fatalf("author = %q", result.Author)
	}
	if result.Likes != 1200 || result.Downloads != 500 || result.Views != 3500000 {
		t.Fatalf("counters = %d/%d/%d", result.Likes, result.Downloads, result.Views)
	}
}

func TestPreviewFetcherFallbacks(t *testing.T) {
	page := `<html><head><title>Page Title</title></head>
<body><h1>Heading Title</h1><img src="https://cdn.example.com/a.png"></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	fetcher := NewPreviewFetcher(testutil.Logger(t))
	result := fetcher.Fetch(context.Background(), srv.URL+"/models/2-vase")

	if result.Title != "Heading Title" {
		t.Fatalf("h1 fallback not used: %q", result.Title)
	}
	if result.Image != "https://cdn.example.com/a.png" {
		t.Fatalf("img fallback not used: %q", result.Image)
	}
	if result.Partial {
		t.Fatalf("page with an image should not be partial: %+v", result)
	}
}

func TestPreviewFetcherFlagsBarePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer srv.Close()

	fetcher := NewPreviewFetcher(testutil.Logger(t))
	result := fetcher.Fetch(context.Background(), srv.URL+"/models/5-bare")

	if !result.Partial {
		t.Fatalf("expected partial flag on a page with no metadata")
	}
	if result.Title != "5-bare" {
		t.Fatalf("URL tail fallback = %q", result.Title)
	}
}

func TestPreviewFetcherDegradesOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewPreviewFetcher(testutil.Logger(t))
	result := fetcher.Fetch(context.Background(), srv.URL+"/models/3-gone")

	if !result.Partial {
		t.Fatalf("expected partial result")
	}
	if result.Note == "" {
		t.Fatalf("expected a note explaining the degradation")
	}
	if result.Title != "3-gone" {
		t.Fatalf("URL tail fallback = %q", result.Title)
	}
}

func TestPreviewFetcherDegradesOnDeadServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	fetcher := NewPreviewFetcher(testutil.Logger(t))
	result := fetcher.Fetch(context.Background(), srv.URL+"/models/4-dead")

	if !result.Partial {
		t.Fatalf("expected partial result")
	}
}

func TestParseCompactNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"500", 500},
		{"1.2k", 1200},
		{"1.2K", 1200},
		{"3M", 3000000},
		{"0", 0},
		{"junk", 0},
	}
	for _, tc := range cases {
		if got := parseCompactNumber(tc.in); got != tc.want {
			t.Fatalf("parseCompactNumber(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
