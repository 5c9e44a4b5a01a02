// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs. The CLI's
// --config flag maps to ConfigFilePath; ConfigDirPath is primarily for tests.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config.cue when set,
	// bypassing the platform config directory entirely.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads gotask configuration from explicit options, so commands can
// take configuration as a dependency instead of reading files themselves.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates the file-backed configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads, validates, and defaults the configuration for one invocation.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
