package cache

import (
	"context"
	"encoding/json"
	"time"

	"lumera/config"
	"lumera/internal/domain/entity"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"

	"github.com/redis/go-redis/v9"
)

const maxCartUpdateRetries = 5

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewCartRepository stores carts as JSON values that expire after the
// configured idle period.
func NewCartRepository(client *redis.Client, cfg *config.Config) repository.CartRepository {
	return newCartRepository(client, cfg.Redis.CartTTL)
}

func newCartRepository(client *redis.Client, ttl time.Duration) *cartRepository {
	return &cartRepository{client: client, ttl: ttl, now: time.Now}
}

func (r *cartRepository) Get(ctx context.Context, id string) (*entity.Cart, error) {
	return r.load(ctx, r.client, id)
}

func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = r.now()

	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Wrap(err, "marshal cart failed")
	}

	if err := r.client.Set(ctx, cartKey(cart.ID), data, r.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}

	return nil
}

// Update runs fn inside WATCH/MULTI and retries when another writer touched
// the cart in between.
func (r *cartRepository) Update(ctx context.Context, id string, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	key := cartKey(id)

	var updated *entity.Cart
	txf := func(tx *redis.Tx) error {
		cart, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := fn(cart); err != nil {
			return err
		}

		cart.UpdatedAt = r.now()
		data, err := json.Marshal(cart)
		if err != nil {
			return errors.Wrap(err, "marshal cart failed")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)

			return nil
		})
		if err != nil {
			return err
		}

		updated = cart

		return nil
	}

	for range maxCartUpdateRetries {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return nil, err
	}

	return nil, repository.ErrCartConflict
}

func (r *cartRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, cartKey(id)).Err(); err != nil {
		return errors.Wrap(err, "redis delete failed")
	}

	return nil
}

func (r *cartRepository) load(ctx context.Context, cmd stringGetter, id string) (*entity.Cart, error) {
	data, err := cmd.Get(ctx, cartKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrCartNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get failed")
	}

	var cart entity.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, errors.Wrap(err, "unmarshal cart failed")
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}

	return &cart, nil
}

func cartKey(id string) string {
	return "cart:" + id
}
