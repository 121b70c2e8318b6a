package main

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const configFile = ".babalang.yaml"

// config holds the optional CLI settings read from ~/.babalang.yaml. Every
// field has a working default, so a missing or partial file is fine.
type config struct {
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	ContPrompt  string `yaml:"continuation_prompt"`
	Color       bool   `yaml:"color"`
}

func defaultConfig() config {
	return config{
		HistoryFile: ".babalang_history",
		Prompt:      "==> ",
		ContPrompt:  "... ",
		Color:       true,
	}
}

// loadConfig reads ~/.babalang.yaml over the defaults. Unreadable or
// malformed files fall back to the defaults rather than failing the REPL.
func loadConfig() config {
	cfg := defaultConfig()
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, configFile))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultConfig().Prompt
	}
	if cfg.ContPrompt == "" {
		cfg.ContPrompt = defaultConfig().ContPrompt
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = defaultConfig().HistoryFile
	}
	return cfg
}

// historyPath resolves the history file against the home directory unless
// it is already absolute.
func (c config) historyPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
