package store

import (
	"errors"
	"fmt"

	"github.com/emrgen/doctrack/internal/compress"
	"github.com/emrgen/doctrack/internal/config"
)

var (
	ErrUnknownDriver = errors.New("unknown store driver")
)

// NewStore builds the backend selected by cfg.Driver.
func NewStore(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "csv":
		codec, err := compress.New(cfg.Compression)
		if err != nil {
			return nil, err
		}
		return NewCSVStore(cfg.Path, codec), nil
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "postgres":
		db, err := config.GetDb(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
