package cmd

import (
	"fmt"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/config"
)

// resolveTenant is replaced in tests.
var resolveTenant = func() (api.TenantConfig, error) {
	return config.Resolve(config.ResolveOptions{
		Profile: flags.Profile,
		File:    flags.ConfigFile,
	})
}

func newClient() (*api.Client, error) {
	tenant, err := resolveTenant()
	if err != nil {
		return nil, err
	}
	return newClientFor(tenant), nil
}

func newClientFor(tenant api.TenantConfig) *api.Client {
	client := api.New(tenant)
	if flags.Timeout > 0 {
		client.HTTP.Timeout = flags.Timeout
	}
	client.UserAgent = fmt.Sprintf("easemob-cli/%s", version)
	return client
}
