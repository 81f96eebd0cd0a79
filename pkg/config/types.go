package config

// Config is the root of a listd configuration file.
type Config struct {
	Version string        `json:"version" yaml:"version"`
	Server  ServerConfig  `json:"server,omitempty" yaml:"server,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	Lists   ListsConfig   `json:"lists,omitempty" yaml:"lists,omitempty"`
}

// ServerConfig configures the HTTP control surface.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
	// APIKey, when set, is required in the X-Listd-API-Key header on all
	// /api routes.
	APIKey string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ListsConfig holds the per-kind list configurations.
type ListsConfig struct {
	Tasks     ListConfig `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Groceries ListConfig `json:"groceries,omitempty" yaml:"groceries,omitempty"`
	Cards     ListConfig `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// ListConfig configures one list: inline seed entries plus seed-file globs
// (resolved relative to the config file, ** supported).
type ListConfig struct {
	Seeds     []map[string]interface{} `json:"seeds,omitempty" yaml:"seeds,omitempty"`
	SeedFiles []string                 `json:"seedFiles,omitempty" yaml:"seedFiles,omitempty"`
}
