// Package config loads server and studio configuration: an optional
// YAML file layered over built-in defaults, then PIPETRACK_* environment
// overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server and studio configuration.
type Config struct {
	Server       ServerConfig      `yaml:"server"`
	Transport    TransportConfig   `yaml:"transport"`
	Log          LogConfig         `yaml:"log"`
	Repository   RepositoryConfig  `yaml:"repository"`
	Conventions  ConventionsConfig `yaml:"conventions"`
	Defaults     DefaultsConfig    `yaml:"defaults"`
	Users        []UserConfig      `yaml:"users"`
	Environments []Environment     `yaml:"environments"`
	VersionTypes []VersionType     `yaml:"version_types"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how the server speaks MCP: "stdio" for a
// spawned subprocess, "http" for the streamable HTTP endpoint.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// RepositoryConfig locates the shared project repository on disk. The
// active path is picked per platform and can be overridden with the
// PIPETRACK_REPO environment variable.
type RepositoryConfig struct {
	Name         string `yaml:"name"`
	LinuxPath    string `yaml:"linux_path"`
	WindowsPath  string `yaml:"windows_path"`
	OSXPath      string `yaml:"osx_path"`
	DatabaseName string `yaml:"database_name"`
}

// ConventionsConfig holds the studio-wide numbering conventions applied
// to newly created projects.
type ConventionsConfig struct {
	ShotPrefix  string `yaml:"shot_number_prefix"`
	ShotPadding int    `yaml:"shot_number_padding"`
	RevPrefix   string `yaml:"rev_number_prefix"`
	RevPadding  int    `yaml:"rev_number_padding"`
	VerPrefix   string `yaml:"ver_number_prefix"`
	VerPadding  int    `yaml:"ver_number_padding"`
}

// DefaultsConfig holds the image settings and naming defaults stamped
// onto new projects.
type DefaultsConfig struct {
	FPS              int      `yaml:"fps"`
	ResolutionWidth  int      `yaml:"resolution_width"`
	ResolutionHeight int      `yaml:"resolution_height"`
	TakeName         string   `yaml:"default_take_name"`
	ProjectStructure []string `yaml:"project_structure"`
}

type UserConfig struct {
	Name     string `yaml:"name"`
	Initials string `yaml:"initials"`
	Email    string `yaml:"email"`
}

// Environment describes a host application and the file extensions it
// owns.
type Environment struct {
	Name             string   `yaml:"name"`
	Extensions       []string `yaml:"extensions"`
	ExportExtensions []string `yaml:"export_extensions"`
}

// VersionType is the configuration form of a version type, seeded into
// every new project store.
type VersionType struct {
	Name         string   `yaml:"name"`
	Code         string   `yaml:"code"`
	Filename     string   `yaml:"filename"`
	Path         string   `yaml:"path"`
	OutputPath   string   `yaml:"output_path"`
	ExtraFolders string   `yaml:"extra_folders"`
	Environments []string `yaml:"environments"`
	TypeFor      string   `yaml:"type_for"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PIPETRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PIPETRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PIPETRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PIPETRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("PIPETRACK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("PIPETRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
