// Package prolog decodes the header and trailer of an EPANET output file.
package prolog

import (
	"fmt"
	"time"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
	"github.com/qatium/epanet-go/internal/ident"
)

// Prolog holds the element counts and the number of reporting periods.
type Prolog struct {
	NodeCount        int `json:"nodeCount" yaml:"node_count"`
	ResAndTankCount  int `json:"resAndTankCount" yaml:"res_and_tank_count"`
	LinkCount        int `json:"linkCount" yaml:"link_count"`
	PumpCount        int `json:"pumpCount" yaml:"pump_count"`
	ValveCount       int `json:"valveCount" yaml:"valve_count"`
	ReportingPeriods int `json:"reportingPeriods" yaml:"reporting_periods"`
}

// Counts returns the subset the layout resolver needs.
func (p Prolog) Counts() format.Counts {
	return format.Counts{
		Nodes:       p.NodeCount,
		ResAndTanks: p.ResAndTankCount,
		Links:       p.LinkCount,
		Pumps:       p.PumpCount,
		Valves:      p.ValveCount,
	}
}

// Parse reads the counts at their fixed offsets and the reporting period
// count from the trailer.
func Parse(r binio.Reader) (Prolog, error) {
	if r.Len() < format.MinBufferBytes {
		return Prolog{}, format.Malformed("prolog", 0, "buffer of %d bytes is shorter than the %d byte header and trailer", r.Len(), format.MinBufferBytes)
	}
	var p Prolog
	fields := []struct {
		name string
		off  int
		dst  *int
	}{
		{"node count", format.OffsetNodeCount, &p.NodeCount},
		{"reservoir and tank count", format.OffsetResAndTankCount, &p.ResAndTankCount},
		{"link count", format.OffsetLinkCount, &p.LinkCount},
		{"pump count", format.OffsetPumpCount, &p.PumpCount},
		{"valve count", format.OffsetValveCount, &p.ValveCount},
		{"reporting periods", r.Len() - format.TrailerPeriodsFromEnd, &p.ReportingPeriods},
	}
	for _, f := range fields {
		v, err := r.Int32(f.name, f.off)
		if err != nil {
			return Prolog{}, err
		}
		if v < 0 {
			return Prolog{}, format.Malformed(f.name, f.off, "negative count %d", v)
		}
		*f.dst = int(v)
	}
	return p, nil
}

// Validate checks the relations between counts that the format guarantees.
func (p Prolog) Validate() error {
	if p.ResAndTankCount > p.NodeCount {
		return format.Malformed("reservoir and tank count", format.OffsetResAndTankCount,
			"%d reservoirs and tanks exceed %d nodes", p.ResAndTankCount, p.NodeCount)
	}
	if p.PumpCount+p.ValveCount > p.LinkCount {
		return format.Malformed("pump count", format.OffsetPumpCount,
			"%d pumps and %d valves exceed %d links", p.PumpCount, p.ValveCount, p.LinkCount)
	}
	return nil
}

// Header carries the run options and labels stored ahead of the identifier
// tables.
type Header struct {
	Magic         int32                     `json:"magic" yaml:"magic"`
	Version       int32                     `json:"version" yaml:"version"`
	Quality       QualityOption             `json:"quality" yaml:"quality"`
	TraceNode     int                       `json:"traceNode" yaml:"trace_node"`
	FlowUnits     FlowUnits                 `json:"flowUnits" yaml:"flow_units"`
	PressureUnits PressureUnits             `json:"pressureUnits" yaml:"pressure_units"`
	Stats         StatsFlag                 `json:"stats" yaml:"stats"`
	ReportStart   time.Duration             `json:"reportStart" yaml:"report_start"`
	ReportStep    time.Duration             `json:"reportStep" yaml:"report_step"`
	Duration      time.Duration             `json:"duration" yaml:"duration"`
	Title         [format.TitleLines]string `json:"title" yaml:"title"`
	InputFile     string                    `json:"inputFile" yaml:"input_file"`
	ReportFile    string                    `json:"reportFile" yaml:"report_file"`
	ChemicalName  string                    `json:"chemicalName" yaml:"chemical_name"`
	ChemicalUnits string                    `json:"chemicalUnits" yaml:"chemical_units"`
}

// PeriodTime returns the simulation clock of reporting period p.
func (h Header) PeriodTime(p int) time.Duration {
	return h.ReportStart + time.Duration(p)*h.ReportStep
}

// ParseHeader reads the options and labels between the counts and the node
// identifiers. The codes are stored as found; unknown values are kept.
func ParseHeader(r binio.Reader) (Header, error) {
	var h Header
	ints := []struct {
		name string
		off  int
		dst  *int32
	}{
		{"magic number", format.OffsetMagic, &h.Magic},
		{"version", format.OffsetVersion, &h.Version},
	}
	for _, f := range ints {
		v, err := r.Int32(f.name, f.off)
		if err != nil {
			return Header{}, err
		}
		*f.dst = v
	}

	names := []string{
		"quality option", "trace node", "flow units", "pressure units", "statistics flag",
		"reporting start", "reporting step", "duration",
	}
	codes := make([]int32, len(names))
	for i, name := range names {
		v, err := r.Int32(name, format.OffsetQualityOption+format.WordBytes*i)
		if err != nil {
			return Header{}, err
		}
		codes[i] = v
	}
	h.Quality = QualityOption(codes[0])
	h.TraceNode = int(codes[1])
	h.FlowUnits = FlowUnits(codes[2])
	h.PressureUnits = PressureUnits(codes[3])
	h.Stats = StatsFlag(codes[4])
	h.ReportStart = time.Duration(codes[5]) * time.Second
	h.ReportStep = time.Duration(codes[6]) * time.Second
	h.Duration = time.Duration(codes[7]) * time.Second

	title, err := ident.ReadFixed(r, "title", format.OffsetTitle, format.TitleLines, format.TitleLineBytes)
	if err != nil {
		return Header{}, err
	}
	copy(h.Title[:], title)

	texts := []struct {
		name  string
		off   int
		width int
		dst   *string
	}{
		{"input file", format.OffsetInputFile, format.FileNameBytes, &h.InputFile},
		{"report file", format.OffsetReportFile, format.FileNameBytes, &h.ReportFile},
		{"chemical name", format.OffsetChemicalName, format.IDBytes, &h.ChemicalName},
		{"chemical units", format.OffsetChemicalUnits, format.IDBytes, &h.ChemicalUnits},
	}
	for _, f := range texts {
		s, err := ident.ReadString(r, f.name, f.off, f.width)
		if err != nil {
			return Header{}, err
		}
		*f.dst = s
	}
	return h, nil
}

// Epilog is the fixed-size block closing the file.
type Epilog struct {
	BulkRate         float32 `json:"bulkRate" yaml:"bulk_rate"`
	WallRate         float32 `json:"wallRate" yaml:"wall_rate"`
	TankRate         float32 `json:"tankRate" yaml:"tank_rate"`
	SourceRate       float32 `json:"sourceRate" yaml:"source_rate"`
	ReportingPeriods int     `json:"reportingPeriods" yaml:"reporting_periods"`
	Warnings         bool    `json:"warnings" yaml:"warnings"`
	Magic            int32   `json:"magic" yaml:"magic"`
}

// ParseEpilog reads the last format.EpilogBytes of the buffer.
func ParseEpilog(r binio.Reader) (Epilog, error) {
	start := r.Len() - format.EpilogBytes
	if err := r.Check("epilog", start, format.EpilogBytes); err != nil {
		return Epilog{}, err
	}
	rates, err := r.Float32Table("reaction rates", start, format.EpilogReactionRates)
	if err != nil {
		return Epilog{}, err
	}
	e := Epilog{
		BulkRate:         rates[0],
		WallRate:         rates[1],
		TankRate:         rates[2],
		SourceRate:       rates[3],
		ReportingPeriods: int(r.Int32At(r.Len() - format.TrailerPeriodsFromEnd)),
		Warnings:         r.Int32At(r.Len()-format.TrailerWarningFromEnd) != 0,
		Magic:            r.Int32At(r.Len() - format.TrailerMagicFromEnd),
	}
	return e, nil
}

// VerifyMagic checks both magic numbers.
func VerifyMagic(h Header, e Epilog, size int) error {
	if h.Magic != format.MagicNumber {
		return format.Malformed("magic number", format.OffsetMagic, "got %d, want %d", h.Magic, format.MagicNumber)
	}
	if e.Magic != format.MagicNumber {
		return format.Malformed("magic number", size-format.TrailerMagicFromEnd, "got %d, want %d", e.Magic, format.MagicNumber)
	}
	return nil
}

// String renders the counts for logs.
func (p Prolog) String() string {
	return fmt.Sprintf("nodes=%d tanks=%d links=%d pumps=%d valves=%d periods=%d",
		p.NodeCount, p.ResAndTankCount, p.LinkCount, p.PumpCount, p.ValveCount, p.ReportingPeriods)
}
