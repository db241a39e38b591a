package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	// Flavor selects the Bolt store: "neo4j" (default) or "memgraph".
	Flavor string `toml:"flavor"`
}

type MatchConfig struct {
	// MinScore rejects fuzzy matches scoring below it. Zero accepts any
	// score, which is the historical behavior of the pipeline.
	MinScore int `toml:"min_score"`
}

type PipelineConfig struct {
	DataDir   string `toml:"data_dir"`
	OutputDir string `toml:"output_dir"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type Config struct {
	Neo4j    Neo4jConfig    `toml:"neo4j"`
	Match    MatchConfig    `toml:"match"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Server   ServerConfig   `toml:"server"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault reads the config file when it exists and falls back to
// defaults when it does not. A file that exists but fails to parse is
// still an error; only absence is tolerated.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Neo4j.URI == "" {
		c.Neo4j.URI = "bolt://localhost:7687"
	}
	if c.Neo4j.Flavor == "" {
		c.Neo4j.Flavor = "neo4j"
	}
	if c.Pipeline.DataDir == "" {
		c.Pipeline.DataDir = "data"
	}
	if c.Pipeline.OutputDir == "" {
		c.Pipeline.OutputDir = "output"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("NEO4J_URI"); v != "" {
		c.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		c.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		c.Neo4j.Password = v
	}
}
