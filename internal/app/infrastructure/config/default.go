package config

import "time"

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	defaultTimeout   = 15 * time.Second
)

// Default returns the configuration written for a missing config file.
func Default() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			GinMode:  "release",
			Listen:   "127.0.0.1:8080",
		},
		Fetch: Fetch{
			UserAgent: defaultUserAgent,
			Timeout:   Duration(defaultTimeout),
		},
		Storage: Storage{
			Driver: "file",
			Path:   "data/state.json",
		},
		Session: Session{
			FetchMode:   "replace",
			DemoEnabled: true,
		},
	}
}
