package config

import (
	"time"

	"github.com/spf13/viper"
)

type WorkerRedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	Group    string
	Consumer string
}

type QueueConfig struct {
	ClaimInterval time.Duration
}

type LoggingConfig struct {
	Level string
}

type WorkerConfig struct {
	Environment string
	Postgres    PostgresConfig
	Redis       WorkerRedisConfig
	Storage     StorageConfig
	Queues      QueueConfig
	Uploads     UploadsConfig
	Logging     LoggingConfig
}

func LoadWorker() (*WorkerConfig, error) {
	v, err := newViper("worker", "FAMILY_WORKER")
	if err != nil {
		return nil, err
	}
	setWorkerDefaults(v)

	var cfg WorkerConfig
	if err := unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setWorkerDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	setStoreDefaults(v)
	v.SetDefault("redis.group", "media-workers")
	v.SetDefault("redis.consumer", "worker-1")

	v.SetDefault("postgres.maxopen", 5)
	v.SetDefault("postgres.maxidle", 1)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("queues.claiminterval", "30s")

	v.SetDefault("logging.level", "info")
}
