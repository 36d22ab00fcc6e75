package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	orig := version
	version = v
	t.Cleanup(func() { version = orig })
}

func TestVersion(t *testing.T) {
	setupKeyringOnly(t)
	withVersion(t, "1.4.0")

	out, _, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "easemob-cli version 1.4.0\n", out)
}

func TestVersion_MinVersion(t *testing.T) {
	setupKeyringOnly(t)
	withVersion(t, "1.4.0")

	_, _, err := runCmd(t, "version", "--min-version", "1.3.9")
	require.NoError(t, err)

	_, _, err = runCmd(t, "version", "--min-version", "v2.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "older than required")

	_, _, err = runCmd(t, "version", "--min-version", "latest")
	require.Error(t, err)
}
