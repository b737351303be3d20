package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type GitHubConfig struct {
	Token        string        `yaml:"token"`
	BaseURL      string        `yaml:"baseUrl" validate:"required|fullUrl"`
	HTMLURL      string        `yaml:"htmlUrl" validate:"required|fullUrl"`
	Organization string        `yaml:"organization" validate:"required"`
	PageSize     int           `yaml:"pageSize" validate:"required|min:1|max:100"`
	MaxPages     int           `yaml:"maxPages" validate:"required|min:1"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type PipelineConfig struct {
	Months          int           `yaml:"months" validate:"required|min:2"`
	Delay           time.Duration `yaml:"delay" validate:"min:0"`
	IncludeArchived bool          `yaml:"includeArchived"`
}

type Persistence struct {
	FilePath    string `yaml:"filePath" validate:"required|unixPath"`
	Compression string `yaml:"compression" validate:"required|in:none,zstd"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	GitHub      GitHubConfig   `yaml:"github"`
	Pipeline    PipelineConfig `yaml:"pipeline"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
