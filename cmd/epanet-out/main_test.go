package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/internal/config"
	"github.com/qatium/epanet-go/internal/testutil"
)

func TestPrintSeries(t *testing.T) {
	path := testutil.Network().WriteFile(t, "net.out")
	cfg = config.DefaultConfig()

	res, err := decodeFile(context.Background(), path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printSeries(&buf, res, "J1", "", "pressure"))
	require.Equal(t, "0\t0s\t201\n1\t1h0m0s\t10201\n2\t2h0m0s\t20201\n", buf.String())

	buf.Reset()
	require.NoError(t, printSeries(&buf, res, "", "P1", "flow"))
	require.Equal(t, "0\t0s\t-1\n1\t1h0m0s\t-10001\n2\t2h0m0s\t-20001\n", buf.String())

	require.Error(t, printSeries(&buf, res, "missing", "", "pressure"))
	require.Error(t, printSeries(&buf, res, "J1", "", "flow"))
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	in := testutil.Network().WriteFile(t, "net.out")
	out := filepath.Join(dir, "net.json")

	rootCmd.SetArgs([]string{"export", in, "--format", "json", "--output", out, "--config", writeConfig(t, dir)})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), `"J1"`)
}

func TestExportUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := testutil.Network().WriteFile(t, "net.out")

	rootCmd.SetArgs([]string{"export", in, "--format", "csv", "--config", writeConfig(t, dir)})
	require.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "epanet-out.yaml")
	require.NoError(t, config.DefaultConfig().Save(path))
	return path
}
