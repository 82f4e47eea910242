package sqliteexport

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/internal/export"
	"github.com/qatium/epanet-go/internal/testutil"
	"github.com/qatium/epanet-go/pkg/epanetout"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func decodeNetwork(t *testing.T) *epanetout.Results {
	t.Helper()
	res, err := epanetout.Decode(testutil.Network().Bytes())
	require.NoError(t, err)
	return res
}

func TestSaveAndReadBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	res := decodeNetwork(t)

	runID, err := s.Save(ctx, res)
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	require.NoError(t, err)

	pressure, err := s.NodeSeries(ctx, runID, "J1", "pressure")
	require.NoError(t, err)
	require.Len(t, pressure, 3)
	for p, v := range pressure {
		require.InDelta(t, float64(res.Nodes[1].Pressure[p]), v, 1e-6)
	}

	_, err = s.NodeSeries(ctx, runID, "J1", "pressure; DROP TABLE runs")
	require.Error(t, err)
}

func TestRunsAccumulate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	res := decodeNetwork(t)

	first, err := s.Save(ctx, res)
	require.NoError(t, err)
	second, err := s.Save(ctx, res)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, first, runs[0].ID)
	require.Equal(t, "Two node network", runs[0].Title)
	require.Equal(t, 3, runs[0].Periods)
	require.Equal(t, 2, runs[0].Nodes)
	require.Equal(t, 1, runs[0].Links)
}

func TestExportFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.db")
	e, err := export.Lookup("sqlite")
	require.NoError(t, err)

	fe, ok := e.(export.FileExporter)
	require.True(t, ok)
	require.NoError(t, fe.ExportFile(ctx, decodeNetwork(t), path))
	require.NoError(t, fe.ExportFile(ctx, decodeNetwork(t), path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestExportStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Exporter{}.Export(context.Background(), decodeNetwork(t), &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("SQLite format 3\x00")))

	path := filepath.Join(t.TempDir(), "copy.db")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
