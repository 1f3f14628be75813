// Package config loads service configuration from environment variables.
//
// Values come from the process environment (optionally seeded from a .env
// file by the entry point). Provider API keys are plain configuration and
// are handed to the gateways explicitly.
package config
