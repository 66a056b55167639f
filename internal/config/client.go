package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type ClientConfig struct {
	BaseURL         string
	CredentialsFile string
	Timeout         time.Duration
	Logging         LoggingConfig
}

func LoadClient() (*ClientConfig, error) {
	v, err := newViper("familyctl", "FAMILYCTL")
	if err != nil {
		return nil, err
	}
	setClientDefaults(v)

	var cfg ClientConfig
	if err := unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setClientDefaults(v *viper.Viper) {
	v.SetDefault("baseurl", "http://127.0.0.1:8001")
	v.SetDefault("timeout", "30s")
	v.SetDefault("logging.level", "warn")

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("credentialsfile", filepath.Join(home, ".familyctl", "credentials.json"))
}
