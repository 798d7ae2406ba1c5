package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	cartapp "github.com/dwikikusuma/shoping-storefront/internal/cart/app"
	"github.com/dwikikusuma/shoping-storefront/internal/cart/infra/file"
	"github.com/dwikikusuma/shoping-storefront/internal/cart/infra/memory"
	cartredis "github.com/dwikikusuma/shoping-storefront/internal/cart/infra/redis"
	"github.com/dwikikusuma/shoping-storefront/internal/cart/infra/sqlite"
	"github.com/dwikikusuma/shoping-storefront/pkg/config"
)

// cartStorage is the persister selected by CART_STORE plus its lifecycle hooks.
type cartStorage struct {
	persister cartapp.Persister
	ready     func(ctx context.Context) error
	close     func(ctx context.Context) error
	// purge drops carts older than the TTL. Nil when the backend expires
	// entries itself or keeps nothing.
	purge func(ctx context.Context) (int64, error)
}

func openCartStorage(ctx context.Context, cfg config.Config, log *slog.Logger) (*cartStorage, error) {
	nop := func(context.Context) error { return nil }

	switch cfg.CartStore {
	case "memory":
		return &cartStorage{persister: memory.NewPersister(), ready: nop, close: nop}, nil

	case "file":
		p, err := file.NewPersister(cfg.CartDir)
		if err != nil {
			return nil, err
		}
		return &cartStorage{persister: p, ready: nop, close: nop}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		p := sqlite.NewPersister(db)
		return &cartStorage{
			persister: p,
			ready:     db.PingContext,
			close:     func(context.Context) error { return db.Close() },
			purge: func(ctx context.Context) (int64, error) {
				return p.Purge(ctx, time.Now().Add(-cfg.CartTTL))
			},
		}, nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			// carts still work in memory until redis comes back
			log.Warn("redis not reachable at startup", slog.String("addr", cfg.RedisAddr), slog.Any("err", err))
		}
		return &cartStorage{
			persister: cartredis.NewPersister(client, cfg.CartTTL),
			ready:     func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close:     func(context.Context) error { return client.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown CART_STORE %q (want memory, file, sqlite or redis)", cfg.CartStore)
	}
}

// maintain unloads idle carts from memory and purges expired persisted carts
// until ctx is done.
func maintain(ctx context.Context, carts *cartapp.Registry, storage *cartStorage, idle time.Duration, log *slog.Logger) {
	sweep := time.NewTicker(idle / 2)
	defer sweep.Stop()
	purge := time.NewTicker(time.Hour)
	defer purge.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			if n := carts.Sweep(idle); n > 0 {
				log.Debug("idle carts unloaded", slog.Int("count", n), slog.Int("loaded", carts.Len()))
			}
		case <-purge.C:
			if storage.purge == nil {
				continue
			}
			n, err := storage.purge(ctx)
			if err != nil {
				log.Warn("cart purge failed", slog.Any("err", err))
				continue
			}
			if n > 0 {
				log.Info("expired carts purged", slog.Int64("count", n))
			}
		}
	}
}
