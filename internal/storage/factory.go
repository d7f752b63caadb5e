package storage

import (
	"github.com/lshigami/Polliwog/config"
	"github.com/lshigami/Polliwog/database"
	"github.com/rs/zerolog/log"
)

// NewStateStore selects the Store backend from config. Anything other than
// "postgres" falls back to the in-memory store, so the service always starts
// even without a database.
func NewStateStore(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	default:
		if cfg.Storage.Backend != "memory" {
			log.Warn().Str("backend", cfg.Storage.Backend).Msg("Unknown storage backend, using in-memory store")
		}
		return NewMemoryStore(), nil
	}
}
