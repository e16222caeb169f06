package config

import (
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/kv"
)

// NewKVStore opens the backend named by cfg.KVBackend. The returned closer
// releases any client it opened.
func NewKVStore(cfg Config, log *logrus.Logger) (kv.Store, func(), error) {
	backend, err := kv.NormalizeBackend(cfg.KVBackend)
	if err != nil {
		return nil, nil, err
	}
	noop := func() {}

	switch backend {
	case kv.BackendMemory:
		log.Warn("kv: memory backend; data is lost on restart")
		return kv.NewMemoryStore(), noop, nil

	case kv.BackendRedis:
		rdb, err := InitRedis(cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		log.Info("kv: redis connected")
		return kv.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil

	case kv.BackendPostgres:
		db, err := InitPostgres(cfg.PostgresURI)
		if err != nil {
			return nil, nil, err
		}
		st, err := kv.NewPostgresStore(db)
		if err != nil {
			return nil, nil, err
		}
		log.Info("kv: postgres connected")
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return st, closeFn, nil

	default:
		st, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("dir", cfg.DataDir).Info("kv: file backend")
		return st, noop, nil
	}
}
