// Package config loads the optional YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Member is one entry in the team roster. Initials are the short labels
// used for task assignees and milestone teams.
type Member struct {
	Name     string `yaml:"name"`
	Initials string `yaml:"initials"`
	Role     string `yaml:"role"`
}

// Config is the top-level deskboard configuration.
type Config struct {
	DBPath          string   `yaml:"db_path"`
	DefaultAssignee string   `yaml:"default_assignee"`
	DefaultPriority string   `yaml:"default_priority"`
	Team            []Member `yaml:"team"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultPriority: "medium",
		Team: []Member{
			{Name: "Ana Maric", Initials: "AM", Role: "Designer"},
			{Name: "Jonas Keller", Initials: "JK", Role: "Developer"},
			{Name: "Tereza Vlkova", Initials: "TV", Role: "Content"},
		},
	}
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns ~/.config/deskboard/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "deskboard", "config.yaml"), nil
}

// MemberByInitials finds a roster entry by its initials, or nil.
func (c *Config) MemberByInitials(initials string) *Member {
	for i := range c.Team {
		if c.Team[i].Initials == initials {
			return &c.Team[i]
		}
	}
	return nil
}
