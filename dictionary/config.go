package dictionary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/dicofr/larousse"
)

// Config holds all dicofr configuration.
type Config struct {
	DBPath    string          `yaml:"db_path"`
	WordsPath string          `yaml:"words_path"` // empty disables suggestions
	Listen    string          `yaml:"listen"`
	Parser    ParserConfig    `yaml:"parser"`
	Upstream  larousse.Config `yaml:"upstream"`
	Search    SearchConfig    `yaml:"search"`
}

// ParserConfig controls definition parsing.
type ParserConfig struct {
	MaxSenses int `yaml:"max_senses"`
}

// SearchConfig controls word-list suggestions.
type SearchConfig struct {
	Limit  int `yaml:"limit"`
	MinLen int `yaml:"min_len"`
}

func (c *Config) defaults() {
	if c.DBPath == "" {
		c.DBPath = "dicofr.db"
	}
	if c.Listen == "" {
		c.Listen = ":5328"
	}
	if c.Parser.MaxSenses <= 0 {
		c.Parser.MaxSenses = 3
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = 10
	}
	if c.Search.MinLen <= 0 {
		c.Search.MinLen = 2
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("dictionary: parse %s: %w", path, err)
	}
	return cfg, nil
}
