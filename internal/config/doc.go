// Package config loads the organizer settings file (uco_config.yaml, or the
// legacy uco_config.json) from the source root. The document is validated
// against an embedded JSON schema, decoded on top of Default() with rule
// order preserved, and then overlaid with UCO_* environment variables and
// command-line flags through Viper.
package config
