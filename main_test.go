package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/articleseo/cache"
	"github.com/seo-optimizer/articleseo/config"
	"github.com/seo-optimizer/articleseo/history"
)

func TestNewRecorder(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	rec, closeFn, err := newRecorder(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.Nil(t, rec)

	cfg.Server.DevMode = true
	rec, closeFn, err = newRecorder(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &history.Memory{}, rec)
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache.Backend = "none"
	assert.IsType(t, cache.Nop{}, newCache(ctx, cfg))

	cfg.Cache.Backend = "memory"
	c := newCache(ctx, cfg)
	defer c.Close()
	assert.IsType(t, &cache.Memory{}, c)
}
