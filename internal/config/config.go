package config

import "time"

// Config is the root application configuration.
type Config struct {
	API         APIConfig         `yaml:"api"`
	LocalStore  LocalStoreConfig  `yaml:"local_store"`
	Annotations AnnotationsConfig `yaml:"annotations"`
	Log         LogConfig         `yaml:"log"`
}

// APIConfig holds backend REST endpoint settings.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"API_BASE_URL"   env-required:"true"`
	Timeout   time.Duration `yaml:"timeout"    env:"API_TIMEOUT"    env-default:"30s"`
	UserAgent string        `yaml:"user_agent" env:"API_USER_AGENT" env-default:"pathclient"`
}

// LocalStoreConfig holds settings for the badger-backed local store used in
// offline/demo mode.
type LocalStoreConfig struct {
	Path     string `yaml:"path"      env:"LOCAL_STORE_PATH" env-default:"./pathclient-local"`
	InMemory bool   `yaml:"in_memory" env:"LOCAL_STORE_IN_MEMORY" env-default:"false"`
}

// AnnotationsConfig holds annotation store tuning.
type AnnotationsConfig struct {
	PageSize   int `yaml:"page_size"   env:"ANNOTATIONS_PAGE_SIZE"   env-default:"100"`
	MaxPending int `yaml:"max_pending" env:"ANNOTATIONS_MAX_PENDING" env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
