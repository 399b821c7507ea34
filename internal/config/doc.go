// Package config loads and validates application settings from the
// environment and an optional config file, exposing them as typed structs
// so the rest of the code never reads environment variables directly.
package config
