package binio

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/internal/format"
)

func TestScalars(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:], uint32(0xFFFFFFFE))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(12.5))
	r := New(buf)

	i, err := r.Int32("value", 0)
	require.NoError(t, err)
	require.Equal(t, int32(-2), i)

	f, err := r.Float32("value", 4)
	require.NoError(t, err)
	require.Equal(t, float32(12.5), f)
}

func TestOutOfBounds(t *testing.T) {
	r := New(make([]byte, 6))
	for _, off := range []int{-1, 3, 6, 100} {
		_, err := r.Int32("count", off)
		require.Error(t, err)
		require.True(t, errors.Is(err, format.ErrMalformedInput))
	}
	_, err := r.Bytes("id", 2, 5)
	require.ErrorIs(t, err, format.ErrMalformedInput)
}

func TestCheckTableRejectsHugeCounts(t *testing.T) {
	r := New(make([]byte, 64))
	require.NoError(t, r.CheckTable("ids", 0, 2, 32))
	require.Error(t, r.CheckTable("ids", 0, 3, 32))
	require.Error(t, r.CheckTable("ids", 32, math.MaxInt32, 32))
	require.Error(t, r.CheckTable("ids", 0, -1, 4))
}

func TestTables(t *testing.T) {
	buf := make([]byte, 12)
	for i, v := range []int32{1, -5, 9} {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
	}
	got, err := New(buf).Int32Table("indices", 0, 3)
	require.NoError(t, err)
	require.Equal(t, []int32{1, -5, 9}, got)

	_, err = New(buf).Float32Table("areas", 4, 3)
	require.ErrorIs(t, err, format.ErrMalformedInput)
}
