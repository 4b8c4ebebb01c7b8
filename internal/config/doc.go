// Package config loads all tunable pipeline parameters from environment
// variables, with defaults matching the reference deployment.
package config
