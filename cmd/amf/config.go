package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"pkt.systems/amf/chat"
)

// cliConfig holds the optional settings read from the config file.
// Every field has a flag that overrides it.
type cliConfig struct {
	Backend string `yaml:"backend"`
	Model   string `yaml:"model"`
	Mode    string `yaml:"mode"`
	Theme   string `yaml:"theme"`
	Width   int    `yaml:"width"`
}

// configPath returns the config file location: $AMF_CONFIG when set,
// otherwise the amf/config.yaml under the user config directory.
func configPath() string {
	if path := os.Getenv("AMF_CONFIG"); path != "" {
		return normalizePath(path)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "amf", "config.yaml")
}

// loadConfig reads the config file. A missing or unreadable file is
// not an error; flags and defaults carry the day.
func loadConfig() cliConfig {
	var cfg cliConfig
	path := configPath()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cliConfig{}
	}
	return cfg
}

// backendURL resolves the backend address: flag, then $AMF_BACKEND,
// then the config file, then the default.
func (c cliConfig) backendURL(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("AMF_BACKEND"); env != "" {
		return env
	}
	if c.Backend != "" {
		return c.Backend
	}
	return chat.DefaultBaseURL
}
