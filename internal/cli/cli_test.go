package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/mrsgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopHCL = `
structure "shop" {
  layer "base" {
    metamodel "core" {}
  }
  layer "domain" {
    metamodel "orders" {
      reference "core" {}
    }
  }
}
`

const upwardHCL = `
structure "shop" {
  layer "base" {
    metamodel "core" {
      reference "orders" { classification = optional }
    }
  }
  layer "domain" {
    metamodel "orders" {}
  }
}
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	err := Execute(context.Background(), args, out, errOut)
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T", err)
	return exitErr.Code
}

func TestExecute_ExitCodes(t *testing.T) {
	good := testutil.WriteFiles(t, map[string]string{"shop.mrs.hcl": shopHCL})
	bad := testutil.WriteFiles(t, map[string]string{"shop.mrs.hcl": upwardHCL})

	testCases := []struct {
		name string
		args []string
		want int
	}{
		{name: "well-formed", args: []string{"validate", good}, want: 0},
		{name: "violations", args: []string{"validate", bad}, want: ExitViolations},
		{name: "violations tolerated", args: []string{"validate", "--fail-on-violation=false", bad}, want: 0},
		{name: "missing path", args: []string{"validate", filepath.Join(good, "missing")}, want: ExitFailure},
		{name: "unknown flag", args: []string{"validate", "--bogus", good}, want: ExitUsage},
		{name: "invalid log level", args: []string{"--log-level", "trace", "validate", good}, want: ExitUsage},
		{name: "invalid output", args: []string{"list", "-o", "csv", good}, want: ExitUsage},
		{name: "unknown command", args: []string{"frobnicate"}, want: ExitUsage},
		{name: "missing config file", args: []string{"--config", filepath.Join(good, "nope.yaml"), "validate", good}, want: ExitUsage},
		{name: "help", args: []string{"--help"}, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.args...)
			assert.Equal(t, tc.want, exitCode(t, err), "error: %v", err)
		})
	}
}

func TestExecute_ValidateOutput(t *testing.T) {
	bad := testutil.WriteFiles(t, map[string]string{"shop.mrs.hcl": upwardHCL})

	out, _, err := run(t, "validate", "-o", "json", bad)
	require.Equal(t, ExitViolations, exitCode(t, err))

	var doc struct {
		Structure  string `json:"structure"`
		OK         bool   `json:"ok"`
		Violations []struct {
			Kind string `json:"kind"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "shop", doc.Structure)
	assert.False(t, doc.OK)
	require.Len(t, doc.Violations, 1)
	assert.Equal(t, "LayerDirectionViolation", doc.Violations[0].Kind)
}

func TestExecute_LogsGoToErrorStream(t *testing.T) {
	good := testutil.WriteFiles(t, map[string]string{"shop.mrs.hcl": shopHCL})

	out, errOut, err := run(t, "--log-level", "debug", "--log-format", "json", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.NotContains(t, out, `"level"`)
	assert.Contains(t, errOut, `"msg":"Structure built."`)
}

func TestExecute_ConfigFile(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"models/shop.mrs.hcl": shopHCL,
		"mrs.yaml":            "output: yaml\npattern:\n  - \"**/*.mrs.hcl\"\n",
	})
	cfgFile := filepath.Join(root, "mrs.yaml")

	out, _, err := run(t, "--config", cfgFile, "validate", root)
	require.NoError(t, err)
	assert.Contains(t, out, "structure: shop")
	assert.Contains(t, out, "ok: true")

	out, _, err = run(t, "--config", cfgFile, "validate", "-o", "text", root)
	require.NoError(t, err)
	assert.Contains(t, out, "OK\n", "flags take precedence over the config file")
}

func TestExecute_ConfigFilePaths(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"models/shop.mrs.hcl": shopHCL,
	})
	cfgFile := filepath.Join(root, "mrs.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("paths:\n  - "+filepath.Join(root, "models")+"\n"), 0o644))

	out, _, err := run(t, "--config", cfgFile, "list")
	require.NoError(t, err)
	assert.Contains(t, out, `structure "shop"`)
}

func TestExecute_Environment(t *testing.T) {
	good := testutil.WriteFiles(t, map[string]string{"shop.mrs.hcl": shopHCL})
	t.Setenv("MRS_OUTPUT", "json")

	out, _, err := run(t, "order", good)
	require.NoError(t, err)

	var entries []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "core", entries[0]["name"])
	assert.Equal(t, "orders", entries[1]["name"])
}

func TestExecute_Export(t *testing.T) {
	good := testutil.WriteFiles(t, map[string]string{"shop.mrs.hcl": shopHCL})
	file := filepath.Join(t.TempDir(), "shop.mrs.yaml")

	_, _, err := run(t, "export", "--out", file, good)
	require.NoError(t, err)

	out, _, err := run(t, "list", file)
	require.NoError(t, err)
	assert.Contains(t, out, "-> core (MANDATORY)")

	_, _, err = run(t, "export", "--out", "", good)
	assert.Equal(t, ExitUsage, exitCode(t, err))
}

func TestExecute_Help(t *testing.T) {
	_, errOut, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Usage:")
	assert.Contains(t, errOut, "validate")
}
