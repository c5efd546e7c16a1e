// Package config holds the settings of the opscrape tool, read from a
// config file, environment variables and command line flags through viper.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Manu343726/opscrape/pkg/isa/document"
	"github.com/Manu343726/opscrape/pkg/isa/emit"
	"github.com/Manu343726/opscrape/pkg/isa/pipeline"
	"github.com/Manu343726/opscrape/pkg/logging"
	"github.com/Manu343726/opscrape/pkg/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Chapter 6 of the Java Virtual Machine Specification, Java SE 7 Edition
const DefaultSource = "https://docs.oracle.com/javase/specs/jvms/se7/html/jvms-6.html"

// Prefix of the environment variables read by viper (OPSCRAPE_TARGET, ...)
const EnvPrefix = "OPSCRAPE"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// URL or path of the specification document
	Source string `mapstructure:"source" yaml:"source"`
	// Language of the generated code
	Target string `mapstructure:"target" yaml:"target"`
	// Name of the generated instruction enumeration
	Enum string `mapstructure:"enum" yaml:"enum"`
	// Output file. Empty means stdout.
	Output string `mapstructure:"output" yaml:"output"`
	// Maximum time spent fetching the document
	Timeout string `mapstructure:"timeout" yaml:"timeout"`

	Markers document.Markers `mapstructure:"markers" yaml:"markers"`
	Log     logging.Options  `mapstructure:"log" yaml:"log"`
}

// Registers the default value of every setting
func SetDefaults(v *viper.Viper) {
	markers := document.DefaultMarkers()

	v.SetDefault("source", DefaultSource)
	v.SetDefault("target", string(emit.Target_Rust))
	v.SetDefault("enum", emit.DefaultEnumName)
	v.SetDefault("output", "")
	v.SetDefault("timeout", "30s")
	v.SetDefault("markers.block", markers.BlockTag)
	v.SetDefault("markers.section", markers.SectionClass)
	v.SetDefault("markers.title", markers.TitleAttr)
	v.SetDefault("markers.forms", markers.FormsTitle)
	v.SetDefault("markers.format", markers.FormatTitle)
	v.SetDefault("markers.heading", markers.HeadingClass)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Decodes and validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return nil, utils.MakeError(ErrInvalidConfig, "%v", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(emit.Targets(), emit.Target(c.Target)) {
		return utils.MakeError(ErrInvalidConfig, "unsupported target '%v', expected one of: %v", c.Target, utils.FormatSlice(emit.Targets(), ", "))
	}

	if c.Enum == "" {
		return utils.MakeError(ErrInvalidConfig, "empty enumeration name")
	}

	if _, err := c.FetchTimeout(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return utils.MakeError(ErrInvalidConfig, "log level: %v", err)
	}

	m := c.Markers
	for key, value := range map[string]string{
		"markers.block":   m.BlockTag,
		"markers.section": m.SectionClass,
		"markers.title":   m.TitleAttr,
		"markers.forms":   m.FormsTitle,
		"markers.format":  m.FormatTitle,
	} {
		if value == "" {
			return utils.MakeError(ErrInvalidConfig, "empty '%v'", key)
		}
	}

	return nil
}

func (c *Config) FetchTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, utils.MakeError(ErrInvalidConfig, "timeout: %v", err)
	}

	if timeout <= 0 {
		return 0, utils.MakeError(ErrInvalidConfig, "timeout must be positive, got %v", timeout)
	}

	return timeout, nil
}

// Returns the pipeline settings described by the config
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Markers: c.Markers,
		Emit: emit.Options{
			Target:   emit.Target(c.Target),
			EnumName: c.Enum,
		},
	}
}

// Serializes the config as YAML, in the same format it is read from
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("serializing configuration: %w", err)
	}

	return string(data), nil
}
