package repository

import (
	"github.com/emrgen/doctrack/internal/cache"
	"github.com/emrgen/doctrack/internal/config"
	"github.com/emrgen/doctrack/internal/store"
	"github.com/sirupsen/logrus"
)

// Open builds the store and snapshot cache described by cfg and returns a
// repository over them. The dirty flag is shared through redis when an
// address is configured.
func Open(cfg *config.Config, opts ...Option) (*Repository, error) {
	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	var flag cache.Flag
	if cfg.Cache.Redis.Addr != "" {
		flag = cache.NewRedisFlag(cache.NewRedisClient(cfg.Cache.Redis), cfg.Cache.Redis.Key)
		logrus.Infof("sharing document cache flag through redis at %s", cfg.Cache.Redis.Addr)
	}

	snapshot := cache.NewSnapshot(flag, cfg.Cache.Size, cfg.Cache.TTL)

	return New(st, append([]Option{WithCache(snapshot)}, opts...)...)
}
