// Package config loads and validates pareidolia.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/gerunddev/pareidolia/internal/fs"
	"github.com/gerunddev/pareidolia/internal/models"
)

// ErrConfiguration is returned when the configuration cannot be loaded or is
// invalid. Configuration problems fail fast, before any generation begins.
var ErrConfiguration = errors.New("configuration error")

// DefaultFilename is the config file searched for in the working directory.
const DefaultFilename = "pareidolia.toml"

// Config is the complete pareidolia configuration.
type Config struct {
	// Root locates the template store: a directory path (resolved against
	// the config file location) or a github://org/repo[@ref][/subpath] URL.
	Root string

	Generate GenerateConfig

	// Prompts holds the per-action variant requests. An action with no
	// matching entry has no variants configured; that absence is the
	// "no variants" case, not an empty list.
	Prompts []PromptConfig
}

// GenerateConfig controls output naming and tool selection for a run.
type GenerateConfig struct {
	Tool      string        `mapstructure:"tool"`
	Library   string        `mapstructure:"library"`
	OutputDir string        `mapstructure:"output_dir"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// PromptConfig is one variant request: which variants to produce for an
// action+persona pair, and optionally which external tool to use.
type PromptConfig struct {
	Persona  string         `mapstructure:"persona"`
	Action   string         `mapstructure:"action"`
	Variants []string       `mapstructure:"variants"`
	CLITool  string         `mapstructure:"cli_tool"`
	Metadata map[string]any `mapstructure:"metadata"`
}

// schema mirrors the TOML document for unmarshaling.
type schema struct {
	Pareidolia struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"pareidolia"`
	Generate GenerateConfig `mapstructure:"generate"`
	Prompt   []PromptConfig `mapstructure:"prompt"`
}

// Load reads pareidolia.toml from the current directory, falling back to
// defaults when the file does not exist.
func Load() (*Config, error) {
	if _, err := os.Stat(DefaultFilename); os.IsNotExist(err) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		return Default(cwd), nil
	}
	return LoadFromPath(DefaultFilename)
}

// LoadFromPath reads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
	}

	var s schema
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrConfiguration, path, err)
	}

	baseDir := filepath.Dir(path)
	cfg := &Config{
		Root:     resolveRoot(s.Pareidolia.Root, baseDir),
		Generate: s.Generate,
		Prompts:  s.Prompt,
	}
	if !filepath.IsAbs(cfg.Generate.OutputDir) {
		cfg.Generate.OutputDir = filepath.Join(baseDir, cfg.Generate.OutputDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no pareidolia.toml exists.
func Default(projectDir string) *Config {
	return &Config{
		Root: filepath.Join(projectDir, "pareidolia"),
		Generate: GenerateConfig{
			Tool:      "standard",
			OutputDir: filepath.Join(projectDir, "prompts"),
			Timeout:   60 * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pareidolia.root", "pareidolia")
	v.SetDefault("generate.tool", "standard")
	v.SetDefault("generate.library", "")
	v.SetDefault("generate.output_dir", "prompts")
	v.SetDefault("generate.timeout", "60s")
}

// resolveRoot leaves github:// roots alone and anchors relative directory
// roots at the config file location.
func resolveRoot(root, baseDir string) string {
	if fs.IsGitHubURL(root) || filepath.IsAbs(root) {
		return root
	}
	return filepath.Join(baseDir, root)
}

// MergeOverrides returns a copy of the configuration with non-empty CLI
// overrides applied.
func (c *Config) MergeOverrides(tool, library, outputDir string) *Config {
	merged := *c
	if tool != "" {
		merged.Generate.Tool = tool
	}
	if library != "" {
		merged.Generate.Library = library
	}
	if outputDir != "" {
		merged.Generate.OutputDir = outputDir
	}
	return &merged
}

// PromptFor returns the variant request targeting action, if one exists.
func (c *Config) PromptFor(action string) (PromptConfig, bool) {
	for _, p := range c.Prompts {
		if p.Action == action {
			return p, true
		}
	}
	return PromptConfig{}, false
}

// Validate checks the configuration, failing fast on malformed identifiers
// and empty required fields.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root cannot be empty", ErrConfiguration)
	}
	if c.Generate.Tool == "" {
		return fmt.Errorf("%w: generate.tool cannot be empty", ErrConfiguration)
	}
	if c.Generate.Library != "" {
		if err := models.ValidateIdentifier(c.Generate.Library, "library"); err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}
	if c.Generate.Timeout <= 0 {
		return fmt.Errorf("%w: generate.timeout must be positive", ErrConfiguration)
	}

	for i, p := range c.Prompts {
		if err := models.ValidateIdentifier(p.Persona, "prompt persona"); err != nil {
			return fmt.Errorf("%w: prompt[%d]: %v", ErrConfiguration, i, err)
		}
		if err := models.ValidateIdentifier(p.Action, "prompt action"); err != nil {
			return fmt.Errorf("%w: prompt[%d]: %v", ErrConfiguration, i, err)
		}
		if len(p.Variants) == 0 {
			return fmt.Errorf("%w: prompt[%d]: variants cannot be empty", ErrConfiguration, i)
		}
		for _, variant := range p.Variants {
			if err := models.ValidateIdentifier(variant, "variant name"); err != nil {
				return fmt.Errorf("%w: prompt[%d]: %v", ErrConfiguration, i, err)
			}
		}
	}
	return nil
}
