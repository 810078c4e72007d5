package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

const (
	previewCacheTTL    = 24 * time.Hour
	previewCachePrefix = "preview:"
)

// PreviewCache caches scraped model previews so repeated shop lookups do not
// hammer the upstream site. It satisfies services.PreviewCache.
type PreviewCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewPreviewCache(log *logger.Logger, addr string) (*PreviewCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &PreviewCache{
		log: log.With("service", "RedisPreviewCache"),
		rdb: rdb,
	}, nil
}

func (pc *PreviewCache) Get(ctx context.Context, url string) (*types.PreviewResult, bool) {
	raw, err := pc.rdb.Get(ctx, previewCachePrefix+url).Bytes()
	if err != nil {
		if err != goredis.Nil {
			pc.log.Warn("preview cache read failed", "url", url, "error", err)
		}
		return nil, false
	}
	var result types.PreviewResult
	if err := json.Unmarshal(raw, &result); err != nil {
		pc.log.Warn("preview cache entry corrupt", "url", url, "error", err)
		return nil, false
	}
	return &result, true
}

func (pc *PreviewCache) Set(ctx context.Context, url string, result *types.PreviewResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		pc.log.Warn("preview cache encode failed", "url", url, "error", err)
		return
	}
	if err := pc.rdb.Set(ctx, previewCachePrefix+url, raw, previewCacheTTL).Err(); err != nil {
		pc.log.Warn("preview cache write failed", "url", url, "error", err)
	}
}

func (pc *PreviewCache) Close() error {
	return pc.rdb.Close()
}
