package infrastructure

import (
	"fmt"
	"os"
	"strings"

	"weatherproxy.app/pkg/errors"
)

// EnvCredentialProvider reads the upstream API key from an environment
// variable on every call, so a rotated key takes effect without a restart.
type EnvCredentialProvider struct {
	name   string
	lookup func(string) (string, bool)
}

// NewEnvCredentialProvider creates a provider reading the variable called name
func NewEnvCredentialProvider(name string) *EnvCredentialProvider {
	return &EnvCredentialProvider{
		name:   name,
		lookup: os.LookupEnv,
	}
}

// GetAPIKey returns the credential or a ConfigurationError naming the variable
func (p *EnvCredentialProvider) GetAPIKey() (string, error) {
	value, ok := p.lookup(p.name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", errors.NewConfigurationError(fmt.Sprintf("Server misconfigured: %s not set", p.name), nil)
	}
	return value, nil
}

// GetCredentialName returns the environment variable name
func (p *EnvCredentialProvider) GetCredentialName() string {
	return p.name
}
