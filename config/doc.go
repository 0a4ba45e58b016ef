// Package config loads navkit configuration.
//
// It uses Viper to read a YAML file and environment variables, with an
// optional .env file loaded through godotenv. Environment variables override
// file values; ROUTER_DEFAULT_STYLE maps onto router.default_style.
//
// # Usage
//
//	cfg, err := config.Load("navkit")
//
// Load applies defaults and validates. LoadConfig only unmarshals, for
// callers that embed ServiceConfig in their own struct.
package config
