// Package config handles loading checktree configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - User config:    ~/.config/checktree/config.yaml
//   - Project config: .checktree.yaml in the working directory or any parent
//
// Later sources override earlier ones: defaults, user config, project config,
// then the CHECKTREE_POLICY environment variable. Command-line flags are
// applied by the caller on top of the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/checktree/pkg/checklist"
)

// PolicyAsk defers the policy choice to an interactive prompt.
const PolicyAsk = "ask"

// PolicyEnvVar overrides the configured policy.
const PolicyEnvVar = "CHECKTREE_POLICY"

// OutputConfig controls how the result is written.
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // json, markdown
	Clipboard bool   `yaml:"clipboard,omitempty"` // also copy the result to the clipboard
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ExpandDepth      int    `yaml:"expand_depth,omitempty"`      // Auto-expand parents shallower than this
	ShowDescriptions *bool  `yaml:"show_descriptions,omitempty"` // Nil means true
	Theme            string `yaml:"theme,omitempty"`             // auto, dark, light
}

// Config is the top-level configuration for checktree.
type Config struct {
	Policy string       `yaml:"policy,omitempty"` // independent, cascade, ask
	Tree   string       `yaml:"tree,omitempty"`   // Default definition file
	Output OutputConfig `yaml:"output,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Policy: checklist.PolicyIndependent.String(),
		Output: OutputConfig{
			Format: "json",
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// ConfigDir returns the XDG config directory for checktree.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "checktree")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "checktree")
}

// ConfigPath returns the full path to the user config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load builds the effective configuration: defaults, the user config, the
// nearest project config, then environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if path := ConfigPath(); path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	if path, ok := DetectProjectConfig(); ok {
		if err := mergeFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// LoadFrom reads config from a specific path on top of the defaults.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := mergeFile(&cfg, path); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// mergeFile overlays the YAML at path onto cfg. Fields absent from the file
// keep their current values. A missing file is not an error.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Relative tree paths are relative to the config file that names them
	if cfg.Tree != "" {
		cfg.Tree = expandHome(cfg.Tree)
		if !filepath.IsAbs(cfg.Tree) {
			cfg.Tree = filepath.Join(filepath.Dir(path), cfg.Tree)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(PolicyEnvVar)); v != "" {
		cfg.Policy = v
	}
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !c.AsksPolicy() {
		if _, err := checklist.ParsePolicy(c.Policy); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "json", "markdown", "md":
	default:
		return fmt.Errorf("config: unknown output format %q (want json or markdown)", c.Output.Format)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("config: unknown theme %q (want auto, dark or light)", c.UI.Theme)
	}
	if c.UI.ExpandDepth < 0 {
		return fmt.Errorf("config: expand_depth cannot be negative")
	}
	return nil
}

// AsksPolicy reports whether the policy should be chosen interactively.
func (c Config) AsksPolicy() bool {
	return strings.EqualFold(strings.TrimSpace(c.Policy), PolicyAsk)
}

// ResolvedPolicy returns the configured policy. It must not be called when
// AsksPolicy is true.
func (c Config) ResolvedPolicy() (checklist.Policy, error) {
	return checklist.ParsePolicy(c.Policy)
}

// Markdown reports whether output should be a Markdown checklist.
func (c Config) Markdown() bool {
	f := strings.ToLower(c.Output.Format)
	return f == "markdown" || f == "md"
}

// DescriptionsVisible reports whether row descriptions are rendered.
func (c Config) DescriptionsVisible() bool {
	return c.UI.ShowDescriptions == nil || *c.UI.ShowDescriptions
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
