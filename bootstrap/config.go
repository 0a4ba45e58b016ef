package bootstrap

import (
	"github.com/kbukum/navkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.NavConfig (value embedding) satisfies it
// through promoted methods.
//
// Example:
//
//	type MyConfig struct {
//	    config.NavConfig `yaml:",inline" mapstructure:",squash"`
//	    Feed FeedConfig `yaml:"feed" mapstructure:"feed"`
//	}
//
//	app, err := bootstrap.NewApp[*MyConfig](&cfg)
type Config interface {
	GetNavConfig() *config.NavConfig
	ApplyDefaults()
	Validate() error
}
