package classify

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
)

func sideTableBytes(indices []int32, areas []float32) []byte {
	buf := make([]byte, 8*len(indices))
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(idx))
		binary.LittleEndian.PutUint32(buf[4*len(indices)+4*i:], math.Float32bits(areas[i]))
	}
	return buf
}

func TestNodesReservoirAndJunction(t *testing.T) {
	buf := sideTableBytes([]int32{1}, []float32{0})
	categories, advisories, err := ReadNodes(binio.New(buf), 0, 2, 1)
	require.NoError(t, err)
	require.Empty(t, advisories)
	require.Equal(t, []NodeCategory{Reservoir, Junction}, categories)
}

func TestNodesTotals(t *testing.T) {
	table := SideTable{
		Indices: []int32{7, 2, 5, 10},
		Areas:   []float32{0, 113.1, 0, 50.27},
	}
	categories, advisories := Nodes(table, 10)
	require.Empty(t, advisories)

	counts := map[NodeCategory]int{}
	for _, c := range categories {
		counts[c]++
	}
	require.Equal(t, 10, counts[Junction]+counts[Reservoir]+counts[Tank])
	require.Equal(t, len(table.Indices), counts[Reservoir]+counts[Tank])
	require.Equal(t, Reservoir, categories[6])
	require.Equal(t, Tank, categories[1])
	require.Equal(t, Reservoir, categories[4])
	require.Equal(t, Tank, categories[9])
	require.Equal(t, Junction, categories[0])
}

func TestNodesDuplicateFirstWins(t *testing.T) {
	table := SideTable{
		Indices: []int32{3, 3},
		Areas:   []float32{0, 25},
	}
	categories, advisories := Nodes(table, 3)
	require.Equal(t, []NodeCategory{Junction, Junction, Reservoir}, categories)
	require.Len(t, advisories, 1)
	require.Equal(t, 1, advisories[0].Row)
	require.True(t, errors.Is(advisories[0], format.ErrAmbiguousClassification))
}

func TestNodesIndexOutOfRange(t *testing.T) {
	table := SideTable{
		Indices: []int32{0, 4, 2},
		Areas:   []float32{0, 0, 12},
	}
	categories, advisories := Nodes(table, 3)
	require.Equal(t, []NodeCategory{Junction, Tank, Junction}, categories)
	require.Len(t, advisories, 2)
	for _, a := range advisories {
		require.ErrorIs(t, a, format.ErrMalformedInput)
	}
}

func TestReadNodesAdvisoryOffsets(t *testing.T) {
	buf := append(make([]byte, 16), sideTableBytes([]int32{1, 9, 1}, []float32{0, 0, 5})...)
	categories, advisories, err := ReadNodes(binio.New(buf), 16, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []NodeCategory{Reservoir, Junction}, categories)
	require.Len(t, advisories, 2)

	require.Equal(t, "reservoir and tank index", advisories[0].Field)
	require.Equal(t, int32(9), advisories[0].Value)
	require.Equal(t, 20, advisories[0].Offset)
	require.ErrorIs(t, advisories[0], format.ErrMalformedInput)

	require.Equal(t, 2, advisories[1].Row)
	require.Equal(t, 24, advisories[1].Offset)
	require.ErrorIs(t, advisories[1], format.ErrAmbiguousClassification)

	var fe *format.FieldError
	require.ErrorAs(t, advisories[0].FieldError(), &fe)
	require.Equal(t, 20, fe.Offset)
}

func TestReadNodesTruncated(t *testing.T) {
	buf := sideTableBytes([]int32{1, 2}, []float32{0, 1})
	_, _, err := ReadNodes(binio.New(buf[:12]), 0, 2, 2)
	require.ErrorIs(t, err, format.ErrMalformedInput)
}

func TestParseLink(t *testing.T) {
	c, err := ParseLink(2)
	require.NoError(t, err)
	require.Equal(t, Pump, c)

	_, err = ParseLink(9)
	require.ErrorIs(t, err, format.ErrMalformedInput)
	_, err = ParseLink(-1)
	require.ErrorIs(t, err, format.ErrMalformedInput)
}

func TestReadLinks(t *testing.T) {
	buf := make([]byte, 4*LinkCategoryCount)
	for code := 0; code < LinkCategoryCount; code++ {
		binary.LittleEndian.PutUint32(buf[4*code:], uint32(code))
	}
	got, err := ReadLinks(binio.New(buf), 0, LinkCategoryCount)
	require.NoError(t, err)
	require.Equal(t, []LinkCategory{PipeWithCV, Pipe, Pump, PRV, PSV, PBV, FCV, TCV, GPV}, got)
	require.True(t, GPV.IsValve())
	require.False(t, Pump.IsValve())
}

func TestReadLinksInvalidCode(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[4:], 9)
	_, err := ReadLinks(binio.New(buf), 0, 2)
	require.ErrorIs(t, err, format.ErrMalformedInput)

	var fe *format.FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, 4, fe.Offset)
}

func TestReadLengths(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(1000))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(2.5))
	got, err := ReadLengths(binio.New(buf), 0, 2)
	require.NoError(t, err)
	require.Equal(t, []float32{1000, 2.5}, got)
}

func TestCategoryNames(t *testing.T) {
	require.Equal(t, "tank", Tank.String())
	require.Equal(t, "pipe with check valve", PipeWithCV.String())
	require.Equal(t, "link(12)", LinkCategory(12).String())
}
