package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/morispolanco/subjuntivo-buscador/utils"
)

const DefaultCacheTTL = 24 * time.Hour

// ResultCache stores serialized responses. A miss is reported with ok == false and a nil
// error.
type ResultCache interface {
	GetResult(ctx context.Context, key string) (value string, ok bool, err error)
	SetResult(ctx context.Context, key string, value string, ttl time.Duration) error
}

func CacheKey(strategy string, text string) string {
	return fmt.Sprintf("subjunctive:%s:%016x", strategy, utils.HashString(text))
}

type noCache struct{}

func (noCache) GetResult(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (noCache) SetResult(context.Context, string, string, time.Duration) error {
	return nil
}
