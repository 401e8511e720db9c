package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LibreViewConfig struct {
	ApiUrl  string        `yaml:"apiUrl" validate:"required|fullUrl"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
	Product string        `yaml:"product" validate:"required"`
	Version string        `yaml:"version" validate:"required"`
}

type PollerConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type PreferencesConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	LibreView   LibreViewConfig   `yaml:"libreview"`
	Poller      PollerConfig      `yaml:"poller"`
	Preferences PreferencesConfig `yaml:"preferences"`
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
