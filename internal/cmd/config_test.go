package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/config"
)

func TestConfigShow_MasksSecrets(t *testing.T) {
	setupKeyringOnly(t)
	require.NoError(t, config.SaveProfile("default", api.TenantConfig{
		DomainName:   api.DefaultDomain,
		OrgName:      "o",
		AppName:      "a",
		ClientID:     "cid",
		ClientSecret: "YXA6verysecretvalue",
	}))

	out, _, err := runCmd(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "YXA6...alue")
	assert.NotContains(t, out, "verysecret")
	assert.Contains(t, out, "https://a1.easemob.com/o/a/")

	out, _, err = runCmd(t, "config", "show", "--show-secrets", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "YXA6verysecretvalue", decodeJSON(t, out)["client_secret"])
}

func TestConfigSet_UpdatesProfile(t *testing.T) {
	setupKeyringOnly(t)
	require.NoError(t, config.SaveProfile("default", api.TenantConfig{OrgName: "o", AppName: "a"}))

	_, _, err := runCmd(t, "config", "set", "app_name", "other")
	require.NoError(t, err)

	tenant, err := config.LoadProfile("default")
	require.NoError(t, err)
	assert.Equal(t, "other", tenant.AppName)
	assert.Equal(t, "o", tenant.OrgName)
}

func TestConfigSet_NewProfile(t *testing.T) {
	setupKeyringOnly(t)

	_, _, err := runCmd(t, "config", "set", "org_name", "o", "--profile", "fresh")
	require.NoError(t, err)

	tenant, err := config.LoadProfile("fresh")
	require.NoError(t, err)
	assert.Equal(t, "o", tenant.OrgName)
	assert.Equal(t, api.DefaultDomain, tenant.DomainName)
}

func TestConfigSet_UnknownFieldSuggests(t *testing.T) {
	setupKeyringOnly(t)

	_, errOut, err := runCmd(t, "config", "set", "orgname", "x")
	require.Error(t, err)
	assert.True(t, api.IsValidationError(err))
	assert.Equal(t, exitUsage, ExitCode(err))
	assert.Contains(t, errOut, "did you mean org_name")

	profiles, err := config.ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestConfigSet_File(t *testing.T) {
	setupKeyringOnly(t)
	path := filepath.Join(t.TempDir(), "tenant.yaml")

	_, _, err := runCmd(t, "config", "set", "org_name", "fo", "--config", path)
	require.NoError(t, err)
	_, _, err = runCmd(t, "config", "set", "app_name", "fa", "--config", path)
	require.NoError(t, err)

	tenant, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fo", tenant.OrgName)
	assert.Equal(t, "fa", tenant.AppName)

	out, _, err := runCmd(t, "config", "get", "org_name", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "fo\n", out)
}

func TestConfigProfilesAndUse(t *testing.T) {
	setupKeyringOnly(t)
	require.NoError(t, config.SaveProfile("a", api.TenantConfig{OrgName: "o", AppName: "a"}))
	require.NoError(t, config.SaveProfile("b", api.TenantConfig{OrgName: "o", AppName: "b"}))

	out, _, err := runCmd(t, "config", "profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "*  b")

	_, _, err = runCmd(t, "config", "use", "a")
	require.NoError(t, err)
	current, _ := config.CurrentProfile()
	assert.Equal(t, "a", current)

	_, _, err = runCmd(t, "config", "use", "missing")
	assert.ErrorIs(t, err, config.ErrNotConfigured)
}

func TestConfigExport(t *testing.T) {
	rh := newRouteHandler()
	setupTestEnv(t, rh)
	path := filepath.Join(t.TempDir(), "out.yaml")

	_, _, err := runCmd(t, "config", "export", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "org_name: o1")

	out, _, err := runCmd(t, "config", "get", "app_name", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "a1\n", out)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "********", maskSecret("short"))
	assert.Equal(t, "abcd...6789", maskSecret("abcdef0123456789"))
}
