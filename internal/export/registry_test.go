package export

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/pkg/epanetout"
)

type nopExporter struct{ name string }

func (n nopExporter) Name() string { return n.name }

func (nopExporter) Export(context.Context, *epanetout.Results, io.Writer) error { return nil }

func TestRegisterLookup(t *testing.T) {
	Register(nopExporter{name: "Zeta"})
	Register(nopExporter{name: "alpha"})

	e, err := Lookup("zeta")
	require.NoError(t, err)
	require.Equal(t, "Zeta", e.Name())

	names := Names()
	require.Contains(t, names, "alpha")
	require.Contains(t, names, "zeta")
	require.IsNonDecreasing(t, names)

	_, err = Lookup("parquet")
	require.Error(t, err)
	require.Contains(t, err.Error(), "alpha")
}
