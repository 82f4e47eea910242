package epanetout

import (
	"github.com/qatium/epanet-go/internal/classify"
	"github.com/qatium/epanet-go/internal/format"
	"github.com/qatium/epanet-go/internal/network"
	"github.com/qatium/epanet-go/internal/prolog"
	"github.com/qatium/epanet-go/internal/series"
)

type (
	// Prolog holds the element counts and the reporting period count.
	Prolog = prolog.Prolog
	// Header holds the run options and labels of the prolog.
	Header = prolog.Header
	// Epilog holds the run-wide reaction rates and the trailer.
	Epilog = prolog.Epilog
	// Energy is the pump energy usage section.
	Energy = network.Energy
	// PumpEnergy is the energy summary of a single pump.
	PumpEnergy = network.PumpEnergy
	// Advisory reports a table entry that was skipped: a duplicate or
	// dangling reservoir/tank row, a dangling link endpoint or pump link.
	Advisory = format.Advisory
	// FieldError locates a decode failure in the buffer.
	FieldError = format.FieldError

	NodeCategory = classify.NodeCategory
	LinkCategory = classify.LinkCategory
	NodeChannel  = series.NodeChannel
	LinkChannel  = series.LinkChannel
	LinkStatus   = series.LinkStatus
)

// MinFileBytes is the size of an output file for a network with no
// elements and no reporting periods. Shorter buffers never decode.
const MinFileBytes = format.MinFileBytes

const (
	Junction  = classify.Junction
	Reservoir = classify.Reservoir
	Tank      = classify.Tank

	PipeWithCV = classify.PipeWithCV
	Pipe       = classify.Pipe
	Pump       = classify.Pump
	PRV        = classify.PRV
	PSV        = classify.PSV
	PBV        = classify.PBV
	FCV        = classify.FCV
	TCV        = classify.TCV
	GPV        = classify.GPV

	Demand       = series.Demand
	Head         = series.Head
	Pressure     = series.Pressure
	WaterQuality = series.WaterQuality

	Flow            = series.Flow
	Velocity        = series.Velocity
	Headloss        = series.Headloss
	AvgWaterQuality = series.AvgWaterQuality
	Status          = series.Status
	Setting         = series.Setting
	ReactionRate    = series.ReactionRate
	Friction        = series.Friction
)

var (
	// ErrMalformedInput is returned when the buffer does not match the
	// output file layout.
	ErrMalformedInput = format.ErrMalformedInput
	// ErrAmbiguousClassification marks duplicate reservoir/tank rows in
	// Results.Advisories.
	ErrAmbiguousClassification = format.ErrAmbiguousClassification
)

// NodeResult is one node with its time series, one value per reporting
// period in chronological order.
type NodeResult struct {
	ID        string       `json:"id" yaml:"id"`
	Type      NodeCategory `json:"type" yaml:"type"`
	Elevation float32      `json:"elevation" yaml:"elevation"`

	Demand       []float32 `json:"demand" yaml:"demand"`
	Head         []float32 `json:"head" yaml:"head"`
	Pressure     []float32 `json:"pressure" yaml:"pressure"`
	WaterQuality []float32 `json:"waterQuality" yaml:"water_quality"`
}

// LinkResult is one link with its time series and static attributes.
type LinkResult struct {
	ID        string       `json:"id" yaml:"id"`
	Type      LinkCategory `json:"type" yaml:"type"`
	StartNode string       `json:"startNode" yaml:"start_node"`
	EndNode   string       `json:"endNode" yaml:"end_node"`
	Length    float32      `json:"length" yaml:"length"`
	Diameter  float32      `json:"diameter" yaml:"diameter"`

	Flow            []float32 `json:"flow" yaml:"flow"`
	Velocity        []float32 `json:"velocity" yaml:"velocity"`
	Headloss        []float32 `json:"headloss" yaml:"headloss"`
	AvgWaterQuality []float32 `json:"avgWaterQuality" yaml:"avg_water_quality"`
	Status          []float32 `json:"status" yaml:"status"`
	Setting         []float32 `json:"setting" yaml:"setting"`
	ReactionRate    []float32 `json:"reactionRate" yaml:"reaction_rate"`
	Friction        []float32 `json:"friction" yaml:"friction"`
}

// Results is a fully decoded output file. It shares no memory with the
// input buffer.
type Results struct {
	Prolog     Prolog       `json:"prolog" yaml:"prolog"`
	Header     Header       `json:"header" yaml:"header"`
	Epilog     Epilog       `json:"epilog" yaml:"epilog"`
	Energy     Energy       `json:"energy" yaml:"energy"`
	Nodes      []NodeResult `json:"nodes" yaml:"nodes"`
	Links      []LinkResult `json:"links" yaml:"links"`
	Advisories []Advisory   `json:"advisories,omitempty" yaml:"advisories,omitempty"`
}
