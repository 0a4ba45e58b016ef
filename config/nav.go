package config

import (
	"fmt"

	"github.com/kbukum/navkit/validation"
)

// Presentation style names accepted in RouterConfig.DefaultStyle.
const (
	StylePush    = "push"
	StylePresent = "present"
)

// Duplicate registration policies accepted in RouterConfig.DuplicatePolicy.
const (
	PolicyOverwrite = "overwrite"
	PolicyReject    = "reject"
)

// NavConfig is the complete navkit configuration.
type NavConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Router   RouterConfig   `yaml:"router" mapstructure:"router"`
	DeepLink DeepLinkConfig `yaml:"deeplink" mapstructure:"deeplink"`
	Tracing  TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
}

// RouterConfig configures the navigation facade and its store.
type RouterConfig struct {
	// DefaultStyle is used for deep-link navigation.
	DefaultStyle string `yaml:"default_style" mapstructure:"default_style"`
	// Animated is passed to every deep-link navigation.
	Animated bool `yaml:"animated" mapstructure:"animated"`
	// Scopes are registered with the router at startup.
	Scopes []string `yaml:"scopes" mapstructure:"scopes"`
	// DuplicatePolicy decides what a second registration for a type does.
	DuplicatePolicy string `yaml:"duplicate_policy" mapstructure:"duplicate_policy"`
}

// DeepLinkConfig configures the HTTP deep-link intake.
type DeepLinkConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr    string `yaml:"addr" mapstructure:"addr"`
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// GetNavConfig returns the NavConfig. When embedded in a larger config
// struct, this method is promoted.
func (c *NavConfig) GetNavConfig() *NavConfig {
	return c
}

// ApplyDefaults applies default values to every section.
func (c *NavConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Router.ApplyDefaults()
	c.DeepLink.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// Validate validates every section.
func (c *NavConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Router.Validate(); err != nil {
		return fmt.Errorf("config.router: %w", err)
	}
	if err := c.DeepLink.Validate(); err != nil {
		return fmt.Errorf("config.deeplink: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("config.tracing: %w", err)
	}
	return nil
}

// ApplyDefaults applies default values to router configuration.
func (c *RouterConfig) ApplyDefaults() {
	if c.DefaultStyle == "" {
		c.DefaultStyle = StylePush
	}
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = PolicyOverwrite
	}
}

// Validate validates router configuration.
func (c *RouterConfig) Validate() error {
	v := validation.New().
		OneOf("default_style", c.DefaultStyle, []string{StylePush, StylePresent}).
		OneOf("duplicate_policy", c.DuplicatePolicy, []string{PolicyOverwrite, PolicyReject}).
		Unique("scopes", c.Scopes)
	for i, s := range c.Scopes {
		v.Required(fmt.Sprintf("scopes[%d]", i), s)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ApplyDefaults applies default values to deep-link configuration.
func (c *DeepLinkConfig) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8085"
	}
}

// Validate validates deep-link configuration.
func (c *DeepLinkConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if appErr := validation.New().Required("addr", c.Addr).Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ApplyDefaults applies default values to tracing configuration.
func (c *TracingConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate validates tracing configuration.
func (c *TracingConfig) Validate() error {
	v := validation.New().RangeFloat("sample_rate", c.SampleRate, 0, 1)
	if c.Enabled {
		v.Required("endpoint", c.Endpoint)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
