package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skifte/skifte-server/storage"
)

// ProvideStore picks the document store backend from config.
func ProvideStore(config *Config) (storage.Store, error) {
	switch config.StoreBackend {
	case "redis":
		client, err := ProvideRedis(config)
		if err != nil {
			return nil, err
		}

		log.Info().Msg("Using redis document store")
		return storage.NewRedisStore(client), nil

	case "postgres":
		db, err := ProvidePostgres(config)
		if err != nil {
			return nil, err
		}

		store := storage.NewPostgresStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		log.Info().Msg("Using postgres document store")
		return store, nil
	}

	return nil, fmt.Errorf("unknown store backend: %s", config.StoreBackend)
}
