package prolog

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
	"github.com/qatium/epanet-go/internal/testutil"
)

func TestParse(t *testing.T) {
	out := testutil.Network()
	out.Valves = 0
	p, err := Parse(binio.New(out.Bytes()))
	require.NoError(t, err)
	require.Equal(t, Prolog{
		NodeCount:        2,
		ResAndTankCount:  1,
		LinkCount:        1,
		ReportingPeriods: 3,
	}, p)
	require.NoError(t, p.Validate())
}

func TestParseMinimalBuffer(t *testing.T) {
	buf := make([]byte, format.MinBufferBytes)
	binary.LittleEndian.PutUint32(buf[8:], 5)
	binary.LittleEndian.PutUint32(buf[12:], 2)
	binary.LittleEndian.PutUint32(buf[16:], 4)
	binary.LittleEndian.PutUint32(buf[len(buf)-12:], 24)

	p, err := Parse(binio.New(buf))
	require.NoError(t, err)
	require.Equal(t, 5, p.NodeCount)
	require.Equal(t, 2, p.ResAndTankCount)
	require.Equal(t, 4, p.LinkCount)
	require.Equal(t, 24, p.ReportingPeriods)
}

func TestParseShortBuffer(t *testing.T) {
	for _, size := range []int{0, 11, 27, format.MinBufferBytes - 1} {
		_, err := Parse(binio.New(make([]byte, size)))
		require.ErrorIs(t, err, format.ErrMalformedInput, "size %d", size)
	}
}

func TestParseNegativeCount(t *testing.T) {
	buf := make([]byte, format.MinBufferBytes)
	binary.LittleEndian.PutUint32(buf[16:], uint32(0xFFFFFFFF))
	_, err := Parse(binio.New(buf))
	require.ErrorIs(t, err, format.ErrMalformedInput)
	require.Contains(t, err.Error(), "link count")
}

func TestValidate(t *testing.T) {
	require.Error(t, Prolog{NodeCount: 1, ResAndTankCount: 2}.Validate())
	require.Error(t, Prolog{LinkCount: 1, PumpCount: 1, ValveCount: 1}.Validate())
	require.NoError(t, Prolog{NodeCount: 2, ResAndTankCount: 2, LinkCount: 2, PumpCount: 1, ValveCount: 1}.Validate())
}

func TestParseHeader(t *testing.T) {
	out := testutil.Network()
	out.Quality = int32(QualityChemical)
	out.FlowUnits = int32(FlowLPS)
	out.PressureUnits = int32(PressureMeters)
	out.ReportStart = 1800
	out.ChemicalName = "Chlorine"
	out.ChemicalUnits = "mg/L"
	out.InputFile = "net1.inp"
	out.Title = [3]string{"EPANET Example Network 1", "chlorine decay", ""}

	h, err := ParseHeader(binio.New(out.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int32(format.MagicNumber), h.Magic)
	require.Equal(t, int32(20012), h.Version)
	require.Equal(t, QualityChemical, h.Quality)
	require.Equal(t, FlowLPS, h.FlowUnits)
	require.True(t, h.FlowUnits.Metric())
	require.Equal(t, PressureMeters, h.PressureUnits)
	require.Equal(t, StatsSeries, h.Stats)
	require.Equal(t, time.Hour, h.ReportStep)
	require.Equal(t, 2*time.Hour, h.Duration)
	require.Equal(t, "Chlorine", h.ChemicalName)
	require.Equal(t, "mg/L", h.ChemicalUnits)
	require.Equal(t, "net1.inp", h.InputFile)
	require.Equal(t, "chlorine decay", h.Title[1])
	require.Equal(t, 30*time.Minute+2*time.Hour, h.PeriodTime(2))
}

func TestParseEpilog(t *testing.T) {
	out := testutil.Network()
	out.ReactionRates = [4]float32{1.5, 2.5, 0, 0.25}
	out.Warning = 1
	buf := out.Bytes()

	e, err := ParseEpilog(binio.New(buf))
	require.NoError(t, err)
	require.Equal(t, float32(1.5), e.BulkRate)
	require.Equal(t, float32(2.5), e.WallRate)
	require.Equal(t, float32(0.25), e.SourceRate)
	require.Equal(t, 3, e.ReportingPeriods)
	require.True(t, e.Warnings)

	h, err := ParseHeader(binio.New(buf))
	require.NoError(t, err)
	require.NoError(t, VerifyMagic(h, e, len(buf)))
}

func TestVerifyMagicMismatch(t *testing.T) {
	out := testutil.Network()
	out.Magic = 42
	buf := out.Bytes()
	h, err := ParseHeader(binio.New(buf))
	require.NoError(t, err)
	e, err := ParseEpilog(binio.New(buf))
	require.NoError(t, err)
	require.ErrorIs(t, VerifyMagic(h, e, len(buf)), format.ErrMalformedInput)
}

func TestCodeNames(t *testing.T) {
	require.Equal(t, "CMD", FlowCMD.String())
	require.Equal(t, "unknown(12)", FlowUnits(12).String())
	require.Equal(t, "trace", QualityTrace.String())
	require.Equal(t, "kPa", PressureKPa.String())
	require.Equal(t, "range", StatsRange.String())
}
