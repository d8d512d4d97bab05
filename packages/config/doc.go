// Package config loads project-level defaults for the request CLI from a
// YAML config file.
package config
