package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeoutSeconds is used when cmdTimeout is absent or not an integer.
const DefaultTimeoutSeconds = 300

// Config is the root configuration structure.
type Config struct {
	Encoding   string       `json:"encoding" yaml:"encoding"` // Fallback encoding for command output
	ReposDir   string       `json:"reposDir" yaml:"reposDir"`
	OutDir     string       `json:"outDir" yaml:"outDir"`
	DataDir    string       `json:"dataDir" yaml:"dataDir"`
	CmdTimeout Timeout      `json:"cmdTimeout" yaml:"cmdTimeout"`
	Log        LogConfig    `json:"log" yaml:"log"`
	Filters    FilterConfig `json:"filters" yaml:"filters"`

	// baseDir anchors relative directories. Empty means the working directory.
	baseDir string
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
	Dev   bool   `json:"dev" yaml:"dev"`     // Human readable console output
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// Timeout is a command timeout in whole seconds. Zero or less disables it.
type Timeout int

// Duration returns the timeout as a time.Duration, or 0 when disabled.
func (t Timeout) Duration() time.Duration {
	if t <= 0 {
		return 0
	}
	return time.Duration(t) * time.Second
}

// Disabled reports whether commands may run without a deadline.
func (t Timeout) Disabled() bool {
	return t <= 0
}

// UnmarshalJSON accepts an integer literal number of seconds or the string
// "none". Any other value, 30.0 included, falls back to DefaultTimeoutSeconds.
func (t *Timeout) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(val.String()); err == nil {
			*t = Timeout(n)
			return nil
		}
	case string:
		if isDisabledKeyword(val) {
			*t = 0
			return nil
		}
	}
	*t = DefaultTimeoutSeconds
	return nil
}

// MarshalJSON writes disabled timeouts as "none".
func (t Timeout) MarshalJSON() ([]byte, error) {
	if t.Disabled() {
		return json.Marshal("none")
	}
	return json.Marshal(int(t))
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (t *Timeout) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*t = DefaultTimeoutSeconds
		return nil
	}
	switch value.ShortTag() {
	case "!!int":
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			*t = DefaultTimeoutSeconds
			return nil
		}
		*t = Timeout(n)
	case "!!str":
		if isDisabledKeyword(value.Value) {
			*t = 0
		} else {
			*t = DefaultTimeoutSeconds
		}
	default:
		*t = DefaultTimeoutSeconds
	}
	return nil
}

// MarshalYAML writes disabled timeouts as "none".
func (t Timeout) MarshalYAML() (any, error) {
	if t.Disabled() {
		return "none", nil
	}
	return int(t), nil
}

// ParseTimeout parses a command-line timeout: whole seconds or "none".
// Unlike the file decoders it rejects anything else.
func ParseTimeout(s string) (Timeout, error) {
	if isDisabledKeyword(s) {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q (expected seconds or \"none\")", s)
	}
	return Timeout(n), nil
}

func isDisabledKeyword(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "disabled":
		return true
	}
	return false
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Encoding:   "utf-8",
		ReposDir:   "repos",
		OutDir:     "out",
		DataDir:    "data",
		CmdTimeout: DefaultTimeoutSeconds,
		Log: LogConfig{
			Level: "info",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

var defaultFileNames = []string{
	".githistory.json",
	".githistory.yaml",
	".githistory.yml",
}

// LoadConfig loads configuration from a file, merging with defaults.
// An empty path searches the working directory and then the home directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		cfg.baseDir = filepath.Dir(abs)
	}

	return cfg, nil
}

func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range defaultFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SaveConfig saves configuration to a file. The format follows the extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetBaseDir overrides the directory relative paths are resolved against.
func (c *Config) SetBaseDir(dir string) {
	c.baseDir = dir
}

// ReposPath returns the absolute repositories root, creating it if needed.
func (c *Config) ReposPath() (string, error) {
	return c.ensureDir(c.ReposDir)
}

// OutPath returns the absolute output root, creating it if needed.
func (c *Config) OutPath() (string, error) {
	return c.ensureDir(c.OutDir)
}

// DataPath returns the absolute data root, creating it if needed.
func (c *Config) DataPath() (string, error) {
	return c.ensureDir(c.DataDir)
}

func (c *Config) ensureDir(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty directory setting")
	}
	path, err := c.resolve(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	return path, nil
}

func (c *Config) resolve(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", p, err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	base := c.baseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		base = wd
	}
	return filepath.Join(base, p), nil
}
