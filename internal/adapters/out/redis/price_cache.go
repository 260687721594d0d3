// Package redis caches the price list in Redis. Price rules change rarely and
// are read on every order creation.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mealdelivery/internal/core/domain/model/kernel"
	"mealdelivery/internal/core/domain/model/price"
	"mealdelivery/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const versionKey = "prices:version"

// Client is the part of *redis.Client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// AfterCommitFunc defers hook until the writes made through the primary
// repository are committed.
type AfterCommitFunc func(ctx context.Context, hook func(context.Context))

// CacheObserver is told whether a lookup was served from the cache.
type CacheObserver interface {
	ObserveCache(hit bool)
}

// CachedPriceRepository is a read-through cache over a price repository.
// Entries are keyed by day and by a version counter that every committed Add
// bumps, so a new rule makes all cached lists unreachable at once.
type CachedPriceRepository struct {
	primary     ports.PriceRepository
	afterCommit AfterCommitFunc
	client      Client
	ttl         time.Duration
	observer    CacheObserver
	logger      *zap.Logger
}

// NewCachedPriceRepository wraps primary. afterCommit must hold the version
// bump back until the transaction primary writes in commits; otherwise a
// concurrent reader could cache the old list under the new version. A nil
// afterCommit bumps right away, which suits a primary without transactions.
func NewCachedPriceRepository(
	primary ports.PriceRepository,
	afterCommit AfterCommitFunc,
	client Client,
	ttl time.Duration,
	observer CacheObserver,
	logger *zap.Logger,
) *CachedPriceRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if afterCommit == nil {
		afterCommit = func(ctx context.Context, hook func(context.Context)) {
			hook(ctx)
		}
	}
	return &CachedPriceRepository{
		primary:     primary,
		afterCommit: afterCommit,
		client:      client,
		ttl:         ttl,
		observer:    observer,
		logger:      logger,
	}
}

// Add stores the rule and invalidates every cached list once the rule is
// committed.
func (r *CachedPriceRepository) Add(ctx context.Context, p *price.Price) error {
	if err := r.primary.Add(ctx, p); err != nil {
		return err
	}

	r.afterCommit(ctx, r.invalidate)
	return nil
}

func (r *CachedPriceRepository) invalidate(ctx context.Context) {
	if err := r.client.Incr(ctx, versionKey).Err(); err != nil {
		r.logger.Warn("Can not invalidate price cache", zap.Error(err))
	}
}

// GetValidOn serves the list from Redis when possible. Redis failures fall
// back to the primary repository.
func (r *CachedPriceRepository) GetValidOn(ctx context.Context, day time.Time) ([]*price.Price, error) {
	key, err := r.key(ctx, day)
	if err == nil {
		if prices, ok := r.lookup(ctx, key); ok {
			r.observe(true)
			return prices, nil
		}
	}
	r.observe(false)

	prices, err := r.primary.GetValidOn(ctx, day)
	if err != nil {
		return nil, err
	}

	if key != "" {
		r.store(ctx, key, prices)
	}
	return prices, nil
}

func (r *CachedPriceRepository) key(ctx context.Context, day time.Time) (string, error) {
	version, err := r.client.Get(ctx, versionKey).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		r.logger.Warn("Price cache is unavailable", zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("prices:v%s:%s", version, day.Format(time.DateOnly)), nil
}

func (r *CachedPriceRepository) lookup(ctx context.Context, key string) ([]*price.Price, bool) {
	cached, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var snapshots []price.Snapshot
	if err = json.Unmarshal(cached, &snapshots); err != nil {
		return nil, false
	}

	prices := make([]*price.Price, 0, len(snapshots))
	for _, s := range snapshots {
		p, restoreErr := fromSnapshot(s)
		if restoreErr != nil {
			r.logger.Warn("Dropping corrupt price cache entry", zap.String("key", key), zap.Error(restoreErr))
			return nil, false
		}
		prices = append(prices, p)
	}
	return prices, true
}

func (r *CachedPriceRepository) store(ctx context.Context, key string, prices []*price.Price) {
	snapshots := make([]price.Snapshot, 0, len(prices))
	for _, p := range prices {
		snapshots = append(snapshots, p.Snapshot())
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return
	}

	if err = r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("Can not fill price cache", zap.Error(err))
	}
}

func (r *CachedPriceRepository) observe(hit bool) {
	if r.observer != nil {
		r.observer.ObserveCache(hit)
	}
}

func fromSnapshot(s price.Snapshot) (*price.Price, error) {
	id, err := kernel.UUIDFromString(s.ID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.DateOnly, s.Date)
	if err != nil {
		return nil, err
	}

	items := make([]price.Item, 0, len(s.Items))
	for _, is := range s.Items {
		itemID, itemErr := kernel.UUIDFromString(is.ID)
		if itemErr != nil {
			return nil, itemErr
		}
		dishID, itemErr := kernel.UUIDFromString(is.Dish)
		if itemErr != nil {
			return nil, itemErr
		}
		size, itemErr := kernel.ParseSize(is.Size)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := price.RestoreItem(itemID, dishID, size)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return price.RestorePrice(id, kernel.NewMoney(s.Value), date, items)
}
