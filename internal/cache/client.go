package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"infinite-experiment/gamecache/internal/metrics"
)

// Client validates inputs, serializes values to JSON and performs
// get/set/update/delete against a Store.
//
// Set never overwrites a live entry: the first write wins until an explicit
// Update or Delete. Update never creates an entry. The Client holds no
// mutable state of its own and is safe for concurrent use; two concurrent
// Sets on the same key race at the store.
type Client struct {
	store   Store
	logger  *zap.SugaredLogger
	metrics *metrics.MetricsRegistry
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for operation records
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records operation outcomes, hits and misses
func WithMetrics(reg *metrics.MetricsRegistry) Option {
	return func(c *Client) {
		c.metrics = reg
	}
}

// NewClient wraps store. The store handle is expected to be long-lived and
// shared; the Client never closes it.
func NewClient(store Store, opts ...Option) *Client {
	c := &Client{
		store:  store,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key for duration unless a live entry already exists,
// in which case the call is a no-op.
func (c *Client) Set(ctx context.Context, key string, value any, duration time.Duration) error {
	start := time.Now()
	err := c.set(ctx, key, value, duration)
	c.observe("set", start, err)
	return err
}

func (c *Client) set(ctx context.Context, key string, value any, duration time.Duration) error {
	if err := validateWrite(key, duration); err != nil {
		c.logger.Errorw("Invalid argument when setting cache", "key", key, "error", err)
		return err
	}

	current, err := c.store.GetString(ctx, key)
	if err != nil {
		c.logger.Errorw("Error while setting cache", "key", key, "error", err)
		return fmt.Errorf("cache: set %q: %w", key, err)
	}

	if current != "" {
		c.logger.Infow("Key is already in cache", "key", key)
		return nil
	}

	if err := c.write(ctx, key, value, duration); err != nil {
		c.logger.Errorw("Error while setting cache", "key", key, "error", err)
		return fmt.Errorf("cache: set %q: %w", key, err)
	}

	c.logger.Infow("Key was successfully stored in cache", "key", key, "ttl", duration.String())
	return nil
}

// Load decodes the entry stored under key into dest. It reports false with a
// nil error on a cache miss.
func (c *Client) Load(ctx context.Context, key string, dest any) (bool, error) {
	start := time.Now()
	found, err := c.load(ctx, key, dest)
	c.observe("get", start, err)
	if err == nil && c.metrics != nil {
		if found {
			c.metrics.CacheHitsTotal.WithLabelValues(keyPattern(key)).Inc()
		} else {
			c.metrics.CacheMissesTotal.WithLabelValues(keyPattern(key)).Inc()
		}
	}
	return found, err
}

func (c *Client) load(ctx context.Context, key string, dest any) (bool, error) {
	if err := validateKey(key); err != nil {
		c.logger.Errorw("Invalid argument when getting cache", "error", err)
		return false, err
	}

	raw, err := c.store.GetString(ctx, key)
	if err != nil {
		c.logger.Errorw("Error while retrieving from cache", "key", key, "error", err)
		return false, fmt.Errorf("cache: get %q: %w", key, err)
	}

	if raw == "" {
		c.logger.Warnw("There is no data in cache", "key", key)
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Errorw("Error while decoding cached value", "key", key, "error", err)
		return false, fmt.Errorf("cache: get %q: decode value: %w", key, err)
	}

	return true, nil
}

// Get returns the value stored under key decoded as T. The boolean is false
// on a cache miss, which is not an error.
func Get[T any](ctx context.Context, c *Client, key string) (T, bool, error) {
	var value T
	found, err := c.Load(ctx, key, &value)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return value, true, nil
}

// Update replaces the live entry under key with value and a fresh expiration.
// It fails with ErrNoRecordToUpdate when no entry exists.
func (c *Client) Update(ctx context.Context, key string, value any, duration time.Duration) error {
	start := time.Now()
	err := c.update(ctx, key, value, duration)
	c.observe("update", start, err)
	return err
}

func (c *Client) update(ctx context.Context, key string, value any, duration time.Duration) error {
	if err := validateWrite(key, duration); err != nil {
		c.logger.Errorw("Invalid argument when updating cache", "key", key, "error", err)
		return err
	}

	current, err := c.store.GetString(ctx, key)
	if err != nil {
		c.logger.Errorw("Error while updating data in cache", "key", key, "error", err)
		return fmt.Errorf("cache: update %q: %w", key, err)
	}

	if current == "" {
		err := fmt.Errorf("%w with key: %s", ErrNoRecordToUpdate, key)
		c.logger.Errorw("Error while updating data in cache", "key", key, "error", err)
		return err
	}

	if err := c.write(ctx, key, value, duration); err != nil {
		c.logger.Errorw("Error while updating data in cache", "key", key, "error", err)
		return fmt.Errorf("cache: update %q: %w", key, err)
	}

	c.logger.Infow("Key was successfully updated in cache", "key", key, "ttl", duration.String())
	return nil
}

// Delete removes key unconditionally. Deleting a missing key succeeds.
func (c *Client) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := c.delete(ctx, key)
	c.observe("delete", start, err)
	return err
}

func (c *Client) delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		c.logger.Errorw("Invalid argument when deleting from cache", "error", err)
		return err
	}

	if err := c.store.Remove(ctx, key); err != nil {
		c.logger.Errorw("Error while deleting cache", "key", key, "error", err)
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}

	c.logger.Infow("Record was removed from cache", "key", key)
	return nil
}

// Ping checks connectivity of the underlying store
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// write encodes value and stores it with expiration now+duration. Callers
// validate key and duration first.
func (c *Client) write(ctx context.Context, key string, value any, duration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return c.store.SetString(ctx, key, string(data), duration)
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheOperationsTotal.WithLabelValues(op, resultLabel(err)).Inc()
	c.metrics.CacheOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidArgument)
	}
	return nil
}

func validateWrite(key string, duration time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if duration <= 0 {
		return fmt.Errorf("%w: cache duration must be a positive time span, got %s", ErrInvalidArgument, duration)
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNoRecordToUpdate):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

// keyPattern keeps metric cardinality bounded for keys of the form prefix:id
func keyPattern(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i] + ":*"
	}
	return key
}
