// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// minGenerationTTL keeps a generation counter alive well past any in-flight
// read. An expired counter reads as 0 again, which can only reject fills.
const minGenerationTTL = time.Hour

// errStaleTree aborts a fill whose generation has moved on.
var errStaleTree = errors.New("chapter tree invalidated during read")

// RedisTreeCache implements [TreeCache] with JSON values under a fixed TTL
// and a generation counter per chapter.
type RedisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTreeCache creates a Redis-backed [TreeCache]. A zero ttl keeps
// trees until they are invalidated.
func NewRedisTreeCache(client *redis.Client, ttl time.Duration) *RedisTreeCache {
	return &RedisTreeCache{client: client, ttl: ttl}
}

func treeKey(chapterID string) string {
	return constants.RedisPrefixChapterTree + chapterID
}

func generationKey(chapterID string) string {
	return constants.RedisPrefixChapterTreeGeneration + chapterID
}

/*
Get retrieves a cached tree and the chapter's generation in one round trip.

Returns:
  - *Chapter: The cached chapter with paragraphs, nil on a miss
  - int64: The generation to pass to [RedisTreeCache.Set] after a miss
  - error: Connectivity or decoding errors
*/
func (cache *RedisTreeCache) Get(ctx context.Context, chapterID string) (*Chapter, int64, error) {
	values, err := cache.client.MGet(ctx, treeKey(chapterID), generationKey(chapterID)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis_chapter_tree_get_failed: %w", err)
	}

	generation, err := parseGeneration(values[1])
	if err != nil {
		return nil, 0, err
	}

	payload, ok := values[0].(string)
	if !ok {
		return nil, generation, nil
	}

	var tree Chapter
	if err := json.Unmarshal([]byte(payload), &tree); err != nil {
		return nil, 0, fmt.Errorf("redis_chapter_tree_decode_failed: %w", err)
	}
	return &tree, generation, nil
}

func parseGeneration(value any) (int64, error) {
	raw, ok := value.(string)
	if !ok {
		return 0, nil
	}
	generation, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_chapter_tree_generation_invalid: %w", err)
	}
	return generation, nil
}

/*
Set stores a tree under its chapter id if the chapter's generation still
equals generation.

The check and the write run under WATCH, so an invalidation racing the fill
aborts it. A rejected fill is not an error: the next reader fills the cache
from the newer rows.
*/
func (cache *RedisTreeCache) Set(ctx context.Context, tree *Chapter, generation int64) error {
	payload, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("redis_chapter_tree_encode_failed: %w", err)
	}

	key := generationKey(tree.ID)
	err = cache.client.Watch(ctx, func(transaction *redis.Tx) error {
		current, err := transaction.Get(ctx, key).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleTree
		}

		_, err = transaction.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, treeKey(tree.ID), payload, cache.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil, errors.Is(err, errStaleTree), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("redis_chapter_tree_set_failed: %w", err)
	}
}

// InvalidateTree removes a cached tree and advances the chapter's
// generation. Missing keys are not an error.
func (cache *RedisTreeCache) InvalidateTree(ctx context.Context, chapterID string) error {
	_, err := cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(chapterID))
		if cache.ttl > 0 {
			pipe.Expire(ctx, generationKey(chapterID), max(2*cache.ttl, minGenerationTTL))
		}
		pipe.Del(ctx, treeKey(chapterID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_chapter_tree_delete_failed: %w", err)
	}
	return nil
}
