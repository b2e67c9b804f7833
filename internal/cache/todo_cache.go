package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	dom "github.com/Joshcode41/todo-app/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyListPrefix = "todo:list:"
	keyGeneration = "todo:list:gen"
)

// TodoCache caches the todo collection in Redis.
//
// Lists are stored per generation. Every write bumps the generation, so a
// list read before a write can only land under a key nobody reads any more.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func listKey(gen int64) string {
	return keyListPrefix + strconv.FormatInt(gen, 10)
}

// Generation returns the current list generation (0 before the first write).
func (c *TodoCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetList returns the cached list for the current generation, or nil on a
// miss. The generation is returned either way so a miss can be filled with
// SetList.
func (c *TodoCache) GetList(ctx context.Context) ([]dom.Todo, int64, error) {
	gen, err := c.Generation(ctx)
	if err != nil {
		return nil, 0, err
	}
	b, err := c.rdb.Get(ctx, listKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, nil
	}
	if err != nil {
		return nil, gen, err
	}
	list := []dom.Todo{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, gen, err
	}
	return list, gen, nil
}

// SetList stores list under generation gen.
func (c *TodoCache) SetList(ctx context.Context, gen int64, list []dom.Todo) error {
	if list == nil {
		list = []dom.Todo{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(gen), b, c.ttl).Err()
}

// Invalidate starts a new generation (called on every write).
func (c *TodoCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, keyGeneration).Err()
}
