package config

import "github.com/getlistd/listd/pkg/cliconfig"

// CurrentVersion is the config document version this build writes.
const CurrentVersion = "1"

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Server: ServerConfig{
			Host: cliconfig.DefaultHost,
			Port: cliconfig.DefaultPort,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// StarterYAML is the annotated configuration written by `listd init`.
const StarterYAML = `# listd configuration
version: "1"

server:
  host: localhost
  port: 4280
  # apiKey: change-me   # require X-Listd-API-Key on /api routes

logging:
  level: info    # debug, info, warn, error
  format: text   # text, json

lists:
  tasks:
    seeds:
      - title: Try listd
        notes: run "listd list tasks"
  groceries:
    seeds:
      - name: Milk
        quantity: 2
        unit: l
    # seedFiles:
    #   - seeds/**/*.yaml
  cards:
    seeds:
      - prompt: What is the capital of France?
        answer: Paris
        points: 1
`
