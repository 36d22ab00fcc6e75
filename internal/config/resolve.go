package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/easemob/easemob-cli/internal/api"
)

// Environment variables overlaid on top of the stored profile.
const (
	EnvProfile      = "EASEMOB_PROFILE"
	EnvDomain       = "EASEMOB_DOMAIN"
	EnvOrg          = "EASEMOB_ORG"
	EnvApp          = "EASEMOB_APP"
	EnvClientID     = "EASEMOB_CLIENT_ID"
	EnvClientSecret = "EASEMOB_CLIENT_SECRET"
	EnvAccessToken  = "EASEMOB_ACCESS_TOKEN"
)

var envFields = []struct {
	env   string
	field api.Field
}{
	{EnvDomain, api.FieldDomainName},
	{EnvOrg, api.FieldOrgName},
	{EnvApp, api.FieldAppName},
	{EnvClientID, api.FieldClientID},
	{EnvClientSecret, api.FieldClientSecret},
	{EnvAccessToken, api.FieldAccessToken},
}

// ResolveOptions selects where tenant settings come from.
type ResolveOptions struct {
	// Profile overrides EASEMOB_PROFILE and the current profile.
	Profile string
	// File is a YAML tenant file. When set, the keyring is not consulted.
	File string
}

// Resolve builds the tenant configuration. Precedence, lowest first:
// the YAML file or stored profile, then EASEMOB_* variables.
//
// A missing profile is not an error when the environment supplies the org
// and app; env-only setups never touch the keyring.
func Resolve(opts ResolveOptions) (api.TenantConfig, error) {
	var tenant api.TenantConfig
	var err error

	switch {
	case opts.File != "":
		tenant, err = LoadFile(opts.File)
		if err != nil {
			return api.TenantConfig{}, err
		}
	case envConfigured():
		tenant = api.NewTenantConfig(nil)
	default:
		profile := opts.Profile
		if profile == "" {
			profile = strings.TrimSpace(os.Getenv(EnvProfile))
		}
		if profile == "" {
			profile, err = CurrentProfile()
			if err != nil {
				return api.TenantConfig{}, err
			}
		}
		tenant, err = LoadProfile(profile)
		if err != nil {
			return api.TenantConfig{}, err
		}
	}

	applyEnv(&tenant)
	if tenant.DomainName == "" {
		tenant.DomainName = api.DefaultDomain
	}
	if tenant.OrgName == "" || tenant.AppName == "" {
		return api.TenantConfig{}, fmt.Errorf("org_name and app_name must be set (set %s and %s, or run 'em auth login')", EnvOrg, EnvApp)
	}
	return tenant, nil
}

func envConfigured() bool {
	return strings.TrimSpace(os.Getenv(EnvOrg)) != "" && strings.TrimSpace(os.Getenv(EnvApp)) != ""
}

func applyEnv(tenant *api.TenantConfig) {
	for _, ef := range envFields {
		if v := strings.TrimSpace(os.Getenv(ef.env)); v != "" {
			tenant.Set(ef.field.String(), v)
		}
	}
}

// LoadFile reads a YAML tenant file. Keys are the configuration field names;
// unknown keys are ignored.
func LoadFile(path string) (api.TenantConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return api.TenantConfig{}, &api.NotFoundError{Path: path}
		}
		return api.TenantConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return api.TenantConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return api.NewTenantConfig(raw), nil
}

// WriteFile stores tenant as YAML at path with owner-only permissions.
func WriteFile(path string, tenant api.TenantConfig) error {
	data, err := yaml.Marshal(tenant)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
