package services

import (
	"context"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

const shopURLFragment = "makerworld.com"

var urlSuffixPattern = regexp.MustCompile(`[#?].*$`)

// PreviewCache stores fetched preview results keyed by URL. Implementations
// are optional; a nil cache just means every request hits the upstream page.
type PreviewCache interface {
	Get(ctx context.Context, url string) (*types.PreviewResult, bool)
	Set(ctx context.Context, url string, result *types.PreviewResult)
}

type ShopService interface {
	PrintedModels(ctx context.Context) ([]*types.PrintedModel, error)
	Preview(ctx context.Context, url string) (*types.PreviewResult, error)
}

type shopService struct {
	db            *gorm.DB
	log           *logger.Logger
	orderLinkRepo repos.OrderLinkRepo
	fetcher       PreviewFetcher
	cache         PreviewCache
}

func NewShopService(
	db *gorm.DB,
	log *logger.Logger,
	orderLinkRepo repos.OrderLinkRepo,
	fetcher PreviewFetcher,
	cache PreviewCache,
) ShopService {
	serviceLog := log.With("service", "ShopService")
	return &shopService{
		db:            db,
		log:           serviceLog,
		orderLinkRepo: orderLinkRepo,
		fetcher:       fetcher,
		cache:         cache,
	}
}

// normalizeModelURL strips query strings, fragments and the trailing slash so
// the same model printed from slightly different links collapses to one entry.
func normalizeModelURL(raw string) string {
	return strings.TrimRight(urlSuffixPattern.ReplaceAllString(raw, ""), "/")
}

// PrintedModels returns every printed model link, deduped by normalized URL.
// Copies are summed across duplicates and the newest print wins the metadata.
func (ss *shopService) PrintedModels(ctx context.Context) ([]*types.PrintedModel, error) {
	links, err := ss.orderLinkRepo.ListPrinted(ctx, nil, shopURLFragment)
	if err != nil {
		return nil, err
	}

	seen := map[string]*types.PrintedModel{}
	models := make([]*types.PrintedModel, 0, len(links))
	for _, link := range links {
		normalized := normalizeModelURL(link.LinkURL)
		if existing, ok := seen[normalized]; ok {
			existing.Copies += link.Copies
			continue
		}
		model := *link
		model.LinkURL = normalized
		seen[normalized] = &model
		models = append(models, &model)
	}
	return models, nil
}

func (ss *shopService) Preview(ctx context.Context, url string) (*types.PreviewResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, invalidf("url is required")
	}
	if !strings.Contains(url, shopURLFragment) {
		return nil, invalidf("url must be from %s", shopURLFragment)
	}

	if ss.cache != nil {
		if cached, ok := ss.cache.Get(ctx, url); ok {
			return cached, nil
		}
	}

	result := ss.fetcher.Fetch(ctx, url)
	if ss.cache != nil && !result.Partial {
		ss.cache.Set(ctx, url, result)
	}
	return result, nil
}
