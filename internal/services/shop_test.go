package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/repos/testutil"
	"github.com/printforge/printforge-backend/internal/types"
)

type stubFetcher struct {
	calls  int
	result *types.PreviewResult
}

func (sf *stubFetcher) Fetch(ctx context.Context, url string) *types.PreviewResult {
	sf.calls++
	out := *sf.result
	out.URL = url
	return &out
}

type mapCache struct {
	entries map[string]*types.PreviewResult
}

func (mc *mapCache) Get(ctx context.Context, url string) (*types.PreviewResult, bool) {
	r, ok := mc.entries[url]
	return r, ok
}

func (mc *mapCache) Set(ctx context.Context, url string, result *types.PreviewResult) {
	mc.entries[url] = result
}

func newShopService(t *testing.T, gdb *gorm.DB, fetcher PreviewFetcher, cache PreviewCache) ShopService {
	t.Helper()
	log := testutil.Logger(t)
	return NewShopService(gdb, log, repos.NewOrderLinkRepo(gdb, log), fetcher, cache)
}

func TestNormalizeModelURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://makerworld.com/models/1-benchy", "https://makerworld.com/models/1-benchy"},
		{"https://makerworld.com/models/1-benchy/", "https://makerworld.com/models/1-benchy"},
		{"https://makerworld.com/models/1-benchy?from=feed", "https://makerworld.com/models/1-benchy"},
		{"https://makerworld.com/models/1-benchy#comments", "https://makerworld.com/models/1-benchy"},
		{"https://makerworld.com/models/1-benchy/?a=b#c", "https://makerworld.com/models/1-benchy"},
	}
	for _, tc := range cases {
		if got := normalizeModelURL(tc.in); got != tc.want {
			t.Fatalf("normalizeModelURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPrintedModelsDedupAndSum(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newShopService(t, gdb, &stubFetcher{result: &types.PreviewResult{}}, nil)
	user := testutil.SeedUser(t, ctx, gdb, "alice")
	order := testutil.SeedOrder(t, ctx, gdb, user.ID, user.Username)

	links := []*types.OrderLink{
		{OrderID: order.ID, LinkURL: "https://makerworld.com/models/1-benchy", Copies: 2, Printed: true},
		{OrderID: order.ID, LinkURL: "https://makerworld.com/models/1-benchy/?from=feed", Copies: 3, Printed: true},
		{OrderID: order.ID, LinkURL: "https://makerworld.com/models/2-vase", Copies: 1, Printed: true},
		{OrderID: order.ID, LinkURL: "https://makerworld.com/models/3-hidden", Copies: 1, Printed: false},
		{OrderID: order.ID, LinkURL: "https://thingiverse.com/thing/4", Copies: 1, Printed: true},
	}
	for _, l := range links {
		if err := gdb.Create(l).Error; err != nil {
			t.Fatalf("seed link: %v", err)
		}
	}

	models, err := svc.PrintedModels(ctx)
	if err != nil {
		t.Fatalf("PrintedModels: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 unique models, got %d: %+v", len(models), models)
	}

	byURL := map[string]*types.PrintedModel{}
	for _, m := range models {
		byURL[m.LinkURL] = m
	}
	benchy := byURL["https://makerworld.com/models/1-benchy"]
	if benchy == nil {
		t.Fatalf("benchy missing from %v", byURL)
	}
	if benchy.Copies != 5 {
		t.Fatalf("copies not summed: %d", benchy.Copies)
	}
	if benchy.UserName != "alice" {
		t.Fatalf("order join missing: %+v", benchy)
	}
	if byURL["https://makerworld.com/models/2-vase"] == nil {
		t.Fatalf("vase missing")
	}
}

func TestPreviewValidatesURL(t *testing.T) {
	gdb := testutil.DB(t)
	svc := newShopService(t, gdb, &stubFetcher{result: &types.PreviewResult{}}, nil)

	if _, err := svc.Preview(context.Background(), ""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty url err = %v, want ErrInvalid", err)
	}
	if _, err := svc.Preview(context.Background(), "https://thingiverse.com/thing/4"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("foreign url err = %v, want ErrInvalid", err)
	}
}

func TestPreviewUsesCache(t *testing.T) {
	gdb := testutil.DB(t)
	fetcher := &stubFetcher{result: &types.PreviewResult{Title: "Benchy", Likes: 1200}}
	cache := &mapCache{entries: map[string]*types.PreviewResult{}}
	svc := newShopService(t, gdb, fetcher, cache)

	url := "https://makerworld.com/models/1-benchy"
	first, err := svc.Preview(context.Background(), url)
	if err != nil {
		t.Fatalf("first preview: %v", err)
	}
	if first.Title != "Benchy" {
		t.Fatalf("first preview = %+v", first)
	}

	second, err := svc.Preview(context.Background(), url)
	if err != nil {
		t.Fatalf("second preview: %v", err)
	}
	if second.Title != "Benchy" {
		t.Fatalf("second preview = %+v", second)
	}
	if fetcher.calls != 1 {
		t.Fatalf("cache miss count = %d, want 1", fetcher.calls)
	}
}

func TestPreviewDoesNotCachePartialResults(t *testing.T) {
	gdb := testutil.DB(t)
	fetcher := &stubFetcher{result: &types.PreviewResult{Partial: true, Note: "page could not be fetched"}}
	cache := &mapCache{entries: map[string]*types.PreviewResult{}}
	svc := newShopService(t, gdb, fetcher, cache)

	url := "https://makerworld.com/models/1-benchy"
	for i := 0; i < 2; i++ {
		result, err := svc.Preview(context.Background(), url)
		if err != nil {
			t.Fatalf("preview %d: %v", i, err)
		}
		if !result.Partial {
			t.Fatalf("expected partial result")
		}
	}
	if fetcher.calls != 2 {
		t.Fatalf("partial results must not be cached, calls = %d", fetcher.calls)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("cache holds partial entries: %v", cache.entries)
	}
}
