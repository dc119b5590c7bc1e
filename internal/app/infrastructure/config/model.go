package config

type Config struct {
	App     App     `json:"app"`
	Proxy   *Proxy  `json:"proxy"`
	Fetch   Fetch   `json:"fetch"`
	Storage Storage `json:"storage"`
	Session Session `json:"session"`
}

type App struct {
	LogLevel  string `json:"log_level"`
	GinMode   string `json:"gin_mode"`
	Listen    string `json:"listen"`
	AuthToken string `json:"auth_token"` // для /metrics и pprof, пустой токен закрывает доступ
}

type Proxy struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

type Fetch struct {
	UserAgent string        `json:"user_agent"`
	Timeout   Duration `json:"timeout"`
}

type Storage struct {
	Driver string `json:"driver"` // file | sqlite
	Path   string `json:"path"`
}

type Session struct {
	FetchMode   string `json:"fetch_mode"` // replace | append
	DemoEnabled bool   `json:"demo_enabled"`
}
