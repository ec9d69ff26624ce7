package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps a raw ENV value onto a known environment, defaulting to development.
func ParseEnvironment(raw string) Environment {
	switch Environment(raw) {
	case Production, Test, CI:
		return Environment(raw)
	default:
		return Development
	}
}

// UsesSecrets reports whether sensitive values are read from docker secrets.
// CI pipelines inject them as plain environment variables instead.
func (e Environment) UsesSecrets() bool {
	return e != CI
}
