package config

import (
	"github.com/kelseyhightower/envconfig"
	"time"
)

const EnvPrefix = "CHATKEYWORDS"

// overrides holds the variables read from the environment; unset ones stay nil.
type overrides struct {
	LogLevel      *string        `envconfig:"LOG_LEVEL"`
	GinMode       *string        `envconfig:"GIN_MODE"`
	Listen        *string        `envconfig:"LISTEN"`
	AuthToken     *string        `envconfig:"AUTH_TOKEN"`
	ProxyAddress  *string        `envconfig:"PROXY_ADDRESS"`
	ProxyPort     *int           `envconfig:"PROXY_PORT"`
	UserAgent     *string        `envconfig:"USER_AGENT"`
	FetchTimeout  *time.Duration `envconfig:"FETCH_TIMEOUT"`
	StorageDriver *string        `envconfig:"STORAGE_DRIVER"`
	StoragePath   *string        `envconfig:"STORAGE_PATH"`
	FetchMode     *string        `envconfig:"FETCH_MODE"`
	DemoEnabled   *bool          `envconfig:"DEMO_ENABLED"`
}

func applyEnv(cfg *Config) error {
	var o overrides
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return err
	}

	set(&cfg.App.LogLevel, o.LogLevel)
	set(&cfg.App.GinMode, o.GinMode)
	set(&cfg.App.Listen, o.Listen)
	set(&cfg.App.AuthToken, o.AuthToken)
	set(&cfg.Fetch.UserAgent, o.UserAgent)
	if o.FetchTimeout != nil {
		cfg.Fetch.Timeout = Duration(*o.FetchTimeout)
	}
	set(&cfg.Storage.Driver, o.StorageDriver)
	set(&cfg.Storage.Path, o.StoragePath)
	set(&cfg.Session.FetchMode, o.FetchMode)
	set(&cfg.Session.DemoEnabled, o.DemoEnabled)

	if o.ProxyAddress != nil || o.ProxyPort != nil {
		if cfg.Proxy == nil {
			cfg.Proxy = &Proxy{}
		}
		set(&cfg.Proxy.Address, o.ProxyAddress)
		set(&cfg.Proxy.Port, o.ProxyPort)
	}

	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
