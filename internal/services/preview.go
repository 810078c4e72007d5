package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

const (
	previewTimeout   = 30 * time.Second
	previewUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	previewMaxBody   = 4 << 20
)

var (
	likesPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?[kKmM]?)\s*likes?`)
	downloadsPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?[kKmM]?)\s*downloads?`)
	viewsPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?[kKmM]?)\s*views?`)
)

// PreviewFetcher scrapes a public model page for display metadata. The fetch
// is best-effort: failures produce a partial result, never an error, so a
// broken upstream page cannot break the callers.
type PreviewFetcher interface {
	Fetch(ctx context.Context, pageURL string) *types.PreviewResult
}

type previewFetcher struct {
	client *http.Client
	log    *logger.Logger
}

func NewPreviewFetcher(log *logger.Logger) PreviewFetcher {
	fetcherLog := log.With("service", "PreviewFetcher")
	return &previewFetcher{
		client: &http.Client{Timeout: previewTimeout},
		log:    fetcherLog,
	}
}

func (pf *previewFetcher) Fetch(ctx context.Context, pageURL string) *types.PreviewResult {
	result := &types.PreviewResult{URL: pageURL, Title: titleFromURL(pageURL)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return partial(result, "invalid URL")
	}
	req.Header.Set("User-Agent", previewUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := pf.client.Do(req)
	if err != nil {
		pf.log.Warn("preview fetch failed", "url", pageURL, "error", err)
		return partial(result, "page could not be fetched")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		pf.log.Warn("preview fetch non-200", "url", pageURL, "status", resp.StatusCode)
		return partial(result, fmt.Sprintf("page returned HTTP %d", resp.StatusCode))
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, previewMaxBody))
	if err != nil {
		pf.log.Warn("preview parse failed", "url", pageURL, "error", err)
		return partial(result, "page could not be parsed")
	}

	ex := newExtractor(doc)
	if title := ex.first(ex.ogMeta["og:title"], ex.h1, ex.title); title != "" {
		result.Title = title
	}
	result.Description = ex.first(ex.ogMeta["og:description"], ex.namedMeta["description"])
	result.Image = absoluteURL(pageURL, ex.first(ex.ogMeta["og:image"], ex.firstImg))
	result.Author = ex.ogMeta["article:author"]

	result.Likes = matchCount(likesPattern, ex.text)
	result.Downloads = matchCount(downloadsPattern, ex.text)
	result.Views = matchCount(viewsPattern, ex.text)

	if result.Description == "" && result.Image == "" {
		result.Partial = true
		result.Note = "page yielded no preview metadata"
	}
	return result
}

func partial(result *types.PreviewResult, note string) *types.PreviewResult {
	result.Partial = true
	result.Note = note
	return result
}

// titleFromURL uses the last path segment as a human-ish fallback title.
func titleFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "Model"
	}
	return parts[len(parts)-1]
}

func absoluteURL(pageURL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http") {
		return ref
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}

func matchCount(pattern *regexp.Regexp, text string) int {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return parseCompactNumber(m[1])
}

// parseCompactNumber reads counter strings like "500", "1.2k" or "3M".
func parseCompactNumber(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		multiplier = 1000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		multiplier = 1000000
		s = strings.TrimSuffix(s, "m")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(n * multiplier)
}

// extractor walks the parsed document once and indexes the pieces the
// fetcher cares about.
type extractor struct {
	ogMeta    map[string]string
	namedMeta map[string]string
	h1        string
	title     string
	firstImg  string
	text      string
}

func newExtractor(doc *html.Node) *extractor {
	ex := &extractor{
		ogMeta:    map[string]string{},
		namedMeta: map[string]string{},
	}
	var text strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteByte(' ')
		case html.ElementNode:
			switch n.Data {
			case "meta":
				property := attr(n, "property")
				name := attr(n, "name")
				content := attr(n, "content")
				if property != "" && content != "" {
					if _, ok := ex.ogMeta[property]; !ok {
						ex.ogMeta[property] = content
					}
				}
				if name != "" && content != "" {
					if _, ok := ex.namedMeta[name]; !ok {
						ex.namedMeta[name] = content
					}
				}
			case "h1":
				if ex.h1 == "" {
					ex.h1 = strings.TrimSpace(textContent(n))
				}
			case "title":
				if ex.title == "" {
					ex.title = strings.TrimSpace(textContent(n))
				}
			case "img":
				if ex.firstImg == "" {
					ex.firstImg = attr(n, "src")
				}
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	ex.text = text.String()
	return ex
}

func (ex *extractor) first(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
