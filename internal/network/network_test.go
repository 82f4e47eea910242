package network

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
	"github.com/qatium/epanet-go/internal/testutil"
)

func pumpedNetwork() testutil.OutFile {
	return testutil.OutFile{
		Nodes: []testutil.Node{
			{ID: "SRC", Elevation: 10},
			{ID: "J1", Elevation: 12.5},
			{ID: "T1", Elevation: 40},
		},
		Tanks: []testutil.Tank{{Node: 1, Area: 0}, {Node: 3, Area: 78.5}},
		Links: []testutil.Link{
			{ID: "PU1", Start: 1, End: 2, Type: 2, Length: 0, Diameter: 0},
			{ID: "P1", Start: 2, End: 3, Type: 1, Length: 850, Diameter: 8},
		},
		Pumps: []testutil.Pump{
			{Link: 1, Utilization: 87.5, Efficiency: 75, KWPerFlow: 0.4, AverageKW: 12, PeakKW: 15, CostPerDay: 30},
		},
		PeakEnergy: 15,
		Periods:    1,
	}
}

func TestReadEndpoints(t *testing.T) {
	out := pumpedNetwork()
	l := format.Resolve(format.Counts{Nodes: 3, ResAndTanks: 2, Links: 2, Pumps: 1})
	e, advisories, err := ReadEndpoints(binio.New(out.Bytes()), l)
	require.NoError(t, err)
	require.Empty(t, advisories)
	require.Equal(t, []int{0, 1}, e.Start)
	require.Equal(t, []int{1, 2}, e.End)
}

func TestReadEndpointsDanglingNode(t *testing.T) {
	out := pumpedNetwork()
	out.Links[0].Start = 0
	out.Links[1].End = 4
	l := format.Resolve(format.Counts{Nodes: 3, ResAndTanks: 2, Links: 2, Pumps: 1})
	e, advisories, err := ReadEndpoints(binio.New(out.Bytes()), l)
	require.NoError(t, err)
	require.Equal(t, []int{-1, 1}, e.Start)
	require.Equal(t, []int{1, -1}, e.End)

	require.Len(t, advisories, 2)
	require.Equal(t, "link start node", advisories[0].Field)
	require.Equal(t, 0, advisories[0].Row)
	require.Equal(t, int32(0), advisories[0].Value)
	require.Equal(t, l.LinkStartNodes, advisories[0].Offset)
	require.Equal(t, "link end node", advisories[1].Field)
	require.Equal(t, 1, advisories[1].Row)
	require.Equal(t, int32(4), advisories[1].Value)
	require.Equal(t, l.LinkEndNodes+format.WordBytes, advisories[1].Offset)
	for _, a := range advisories {
		require.ErrorIs(t, a, format.ErrMalformedInput)
	}
}

func TestReadEndpointsTruncated(t *testing.T) {
	out := pumpedNetwork()
	l := format.Resolve(format.Counts{Nodes: 3, ResAndTanks: 2, Links: 2, Pumps: 1})
	_, _, err := ReadEndpoints(binio.New(out.Bytes()[:l.LinkEndNodes]), l)
	require.ErrorIs(t, err, format.ErrMalformedInput)
}

func TestReadElevationsAndDiameters(t *testing.T) {
	out := pumpedNetwork()
	l := format.Resolve(format.Counts{Nodes: 3, ResAndTanks: 2, Links: 2, Pumps: 1})
	r := binio.New(out.Bytes())

	elev, err := ReadElevations(r, l)
	require.NoError(t, err)
	require.Equal(t, []float32{10, 12.5, 40}, elev)

	diam, err := ReadDiameters(r, l)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 8}, diam)
}

func TestReadEnergy(t *testing.T) {
	out := pumpedNetwork()
	l := format.Resolve(format.Counts{Nodes: 3, ResAndTanks: 2, Links: 2, Pumps: 1})
	e, advisories, err := ReadEnergy(binio.New(out.Bytes()), l)
	require.NoError(t, err)
	require.Empty(t, advisories)
	require.Equal(t, float32(15), e.PeakDemand)
	require.Equal(t, []PumpEnergy{{
		Link: 0, Utilization: 87.5, Efficiency: 75, KWPerFlow: 0.4,
		AverageKW: 12, PeakKW: 15, CostPerDay: 30,
	}}, e.Pumps)
}

func TestReadEnergyDanglingPump(t *testing.T) {
	for _, link := range []int32{0, 3, -1} {
		out := pumpedNetwork()
		out.Pumps[0].Link = link
		l := format.Resolve(format.Counts{Nodes: 3, ResAndTanks: 2, Links: 2, Pumps: 1})
		e, advisories, err := ReadEnergy(binio.New(out.Bytes()), l)
		require.NoError(t, err)
		require.Equal(t, -1, e.Pumps[0].Link)
		require.Equal(t, float32(87.5), e.Pumps[0].Utilization)
		require.Len(t, advisories, 1)
		require.Equal(t, "pump link", advisories[0].Field)
		require.Equal(t, link, advisories[0].Value)
		require.Equal(t, l.PumpEnergy, advisories[0].Offset)
		require.ErrorIs(t, advisories[0], format.ErrMalformedInput)
	}
}
