package prolog

import "strconv"

// QualityOption is the kind of water quality analysis that was run.
type QualityOption int32

const (
	QualityNone QualityOption = iota
	QualityChemical
	QualityAge
	QualityTrace
)

var qualityNames = []string{"none", "chemical", "age", "trace"}

func (q QualityOption) String() string { return codeName(qualityNames, int32(q)) }

// MarshalText implements encoding.TextMarshaler.
func (q QualityOption) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// FlowUnits is the flow unit the run reported in.
type FlowUnits int32

const (
	FlowCFS FlowUnits = iota
	FlowGPM
	FlowMGD
	FlowIMGD
	FlowAFD
	FlowLPS
	FlowLPM
	FlowMLD
	FlowCMH
	FlowCMD
)

var flowNames = []string{"CFS", "GPM", "MGD", "IMGD", "AFD", "LPS", "LPM", "MLD", "CMH", "CMD"}

func (f FlowUnits) String() string { return codeName(flowNames, int32(f)) }

// MarshalText implements encoding.TextMarshaler.
func (f FlowUnits) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Metric reports whether the flow unit implies SI units for other quantities.
func (f FlowUnits) Metric() bool { return f >= FlowLPS }

// PressureUnits is the pressure unit the run reported in.
type PressureUnits int32

const (
	PressurePSI PressureUnits = iota
	PressureMeters
	PressureKPa
)

var pressureNames = []string{"psi", "meters", "kPa"}

func (p PressureUnits) String() string { return codeName(pressureNames, int32(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p PressureUnits) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// StatsFlag tells whether the results block holds a time series or a single
// statistic computed over the run.
type StatsFlag int32

const (
	StatsSeries StatsFlag = iota
	StatsAverage
	StatsMinimum
	StatsMaximum
	StatsRange
)

var statsNames = []string{"series", "average", "minimum", "maximum", "range"}

func (s StatsFlag) String() string { return codeName(statsNames, int32(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s StatsFlag) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func codeName(names []string, code int32) string {
	if code >= 0 && int(code) < len(names) {
		return names[code]
	}
	return "unknown(" + strconv.Itoa(int(code)) + ")"
}
