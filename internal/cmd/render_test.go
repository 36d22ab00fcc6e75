package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/outfmt"
)

func TestCell(t *testing.T) {
	assert.Equal(t, "-", cell(nil))
	assert.Equal(t, "x", cell("x"))
	assert.Equal(t, "1700000000000", cell(float64(1700000000000)))
	assert.Equal(t, "1.5", cell(1.5))
	assert.Equal(t, "a,b", cell([]any{"a", "b"}))
	assert.Equal(t, "true", cell(true))
}

func TestEntityColumns(t *testing.T) {
	cols := entityColumns([]map[string]any{
		{"uuid": "1", "type": "user", "username": "a"},
		{"nickname": "n", "username": "b"},
	})
	assert.Equal(t, []string{"nickname", "username"}, cols)
}

func TestPrintData_Scalar(t *testing.T) {
	var out bytes.Buffer
	f := outfmt.NewFormatter(context.Background(), &out, &out)

	require.NoError(t, printData(f, &api.Response{Data: map[string]any{"data": "ok"}}))
	assert.Equal(t, "ok\n", out.String())
}

func TestPrintEntities_FallsBackToData(t *testing.T) {
	var out bytes.Buffer
	f := outfmt.NewFormatter(context.Background(), &out, &out)

	require.NoError(t, printEntities(f, &api.Response{Data: map[string]any{}}, nil))
	assert.Equal(t, "OK\n", out.String())
}
