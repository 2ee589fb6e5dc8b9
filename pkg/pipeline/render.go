package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/conceptmap/pkg/cache"
	"github.com/matzehuels/conceptmap/pkg/observability"
	"github.com/matzehuels/conceptmap/pkg/render/nodelink"
)

const artifactKeyType = "artifact"

// Render lays out dot once per requested image format.
func Render(ctx context.Context, dot string, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, f := range formats {
		format, err := nodelink.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		data, err := nodelink.Render(ctx, dot, format)
		if err != nil {
			return nil, err
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

// RenderWithCacheInfo renders images with caching and returns whether every
// format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot string, opts Options) (map[string][]byte, bool, error) {
	if len(opts.Render) == 0 {
		return map[string][]byte{}, false, nil
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	dotHash := cache.HashString(dot)

	artifacts := make(map[string][]byte, len(opts.Render))
	var missing []string
	for _, format := range opts.Render {
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, artifactKeyType)
				artifacts[format] = data
				continue
			}
		}
		cacheHooks.OnCacheMiss(ctx, artifactKeyType)
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, dot, missing)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}
	return artifacts, false, nil
}
