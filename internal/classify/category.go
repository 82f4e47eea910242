// Package classify assigns node and link categories from the metadata
// sections of the output file.
package classify

import "strconv"

// NodeCategory tells junctions from reservoirs and tanks.
type NodeCategory int

const (
	Junction NodeCategory = iota
	Reservoir
	Tank
)

var nodeNames = []string{"junction", "reservoir", "tank"}

func (c NodeCategory) String() string {
	if c >= 0 && int(c) < len(nodeNames) {
		return nodeNames[c]
	}
	return "node(" + strconv.Itoa(int(c)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (c NodeCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// LinkCategory is the link type code stored by the engine.
type LinkCategory int

const (
	PipeWithCV LinkCategory = iota
	Pipe
	Pump
	PRV
	PSV
	PBV
	FCV
	TCV
	GPV
)

var linkNames = []string{"pipe with check valve", "pipe", "pump", "PRV", "PSV", "PBV", "FCV", "TCV", "GPV"}

// LinkCategoryCount is the number of valid link type codes.
const LinkCategoryCount = 9

func (c LinkCategory) String() string {
	if c >= 0 && int(c) < len(linkNames) {
		return linkNames[c]
	}
	return "link(" + strconv.Itoa(int(c)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (c LinkCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// IsValve reports whether the link is one of the control valves.
func (c LinkCategory) IsValve() bool { return c >= PRV && c <= GPV }

// Valid reports whether code maps onto a link category.
func (c LinkCategory) Valid() bool { return c >= 0 && c < LinkCategoryCount }
