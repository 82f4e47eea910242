// Package format holds the layout contract of the EPANET binary output file.
//
// The file carries no schema of its own. Every section offset is rebuilt from
// the element counts in the prolog and the fixed per-element record sizes
// declared here, so these values must match the engine byte for byte.
package format

// Scalar widths. Integers are int32 and result values float32, little endian.
const (
	WordBytes = 4
	IDBytes   = 32
)

// MagicNumber opens the prolog and closes the epilog of every output file.
const MagicNumber = 516114521

// Prolog field offsets.
const (
	OffsetMagic           = 0
	OffsetVersion         = 4
	OffsetNodeCount       = 8
	OffsetResAndTankCount = 12
	OffsetLinkCount       = 16
	OffsetPumpCount       = 20
	OffsetValveCount      = 24
	OffsetQualityOption   = 28
	OffsetTraceNode       = 32
	OffsetFlowUnits       = 36
	OffsetPressureUnits   = 40
	OffsetStatsFlag       = 44
	OffsetReportStart     = 48
	OffsetReportStep      = 52
	OffsetDuration        = 56
	OffsetTitle           = 60
	OffsetInputFile       = 300
	OffsetReportFile      = 560
	OffsetChemicalName    = 820
	OffsetChemicalUnits   = 852

	// NodeIDsOffset is where the identifier tables start.
	NodeIDsOffset = 884
)

// Text fields of the prolog.
const (
	TitleLines     = 3
	TitleLineBytes = 80
	FileNameBytes  = 260
)

// HeaderBytes covers the five element counts (offsets 8 through 24).
const HeaderBytes = OffsetValveCount + WordBytes

// Epilog layout, counted back from the end of the buffer.
const (
	EpilogBytes           = 28
	EpilogReactionRates   = 4
	TrailerPeriodsFromEnd = 12
	TrailerWarningFromEnd = 8
	TrailerMagicFromEnd   = 4
	TrailerBytes          = TrailerPeriodsFromEnd

	// MinBufferBytes keeps the header counts and the trailer disjoint.
	MinBufferBytes = HeaderBytes + TrailerBytes

	// MinFileBytes is the smallest complete file: the extended header, the
	// peak energy word and the epilog of a network with no elements.
	MinFileBytes = NodeIDsOffset + peakEnergyBytes + EpilogBytes
)

// Per-element record sizes of the metadata sections, in file order.
const (
	nodeIDBytes        = IDBytes
	linkIDBytes        = IDBytes
	linkEndpointBytes  = 2 * WordBytes
	linkTypeBytes      = WordBytes
	tankIndexBytes     = WordBytes
	tankAreaBytes      = WordBytes
	nodeElevationBytes = WordBytes
	linkLengthBytes    = WordBytes
	linkDiameterBytes  = WordBytes
	PumpRecordBytes    = 7 * WordBytes
	peakEnergyBytes    = WordBytes
)

// Result channels per element class.
const (
	NodeChannels = 4
	LinkChannels = 8
)
