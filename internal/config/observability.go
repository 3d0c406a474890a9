package config

import "errors"

// ObservabilityConfig controls New Relic instrumentation of the HTTP surface.
type ObservabilityConfig struct {
	Enabled    bool   `koanf:"enabled"`
	LicenseKey string `koanf:"license_key"`

	// Filled in by LoadConfig.
	ServiceName string `koanf:"-"`
	Environment string `koanf:"-"`
}

// DefaultObservabilityConfig returns a disabled observability config.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{}
}

// Validate checks that an enabled config carries a license key.
func (o *ObservabilityConfig) Validate() error {
	if o.Enabled && o.LicenseKey == "" {
		return errors.New("observability enabled but no license key set")
	}
	return nil
}
