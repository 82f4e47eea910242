package format

// Counts are the element totals declared in the prolog.
type Counts struct {
	Nodes       int
	ResAndTanks int
	Links       int
	Pumps       int
	Valves      int
}

// Layout lists the byte offset of every section that follows the prolog.
type Layout struct {
	Counts Counts

	NodeIDs        int
	LinkIDs        int
	LinkStartNodes int
	LinkEndNodes   int
	LinkTypes      int
	NodeIndexTable int
	NodeAreaTable  int
	NodeElevations int
	LinkLengths    int
	LinkDiameters  int
	PumpEnergy     int
	PeakEnergy     int
	Results        int

	// FrameBytes is the size of one reporting period in the results block.
	FrameBytes int
}

// Resolve derives the section offsets from the prolog counts. Counts must be
// non-negative; the result depends on nothing else.
func Resolve(c Counts) Layout {
	l := Layout{Counts: c}
	l.NodeIDs = NodeIDsOffset
	l.LinkIDs = l.NodeIDs + nodeIDBytes*c.Nodes
	l.LinkStartNodes = l.LinkIDs + linkIDBytes*c.Links
	l.LinkEndNodes = l.LinkStartNodes + WordBytes*c.Links
	l.LinkTypes = l.LinkStartNodes + linkEndpointBytes*c.Links
	l.NodeIndexTable = l.LinkTypes + linkTypeBytes*c.Links
	l.NodeAreaTable = l.NodeIndexTable + tankIndexBytes*c.ResAndTanks
	l.NodeElevations = l.NodeAreaTable + tankAreaBytes*c.ResAndTanks
	l.LinkLengths = l.NodeElevations + nodeElevationBytes*c.Nodes
	l.LinkDiameters = l.LinkLengths + linkLengthBytes*c.Links
	l.PumpEnergy = l.LinkDiameters + linkDiameterBytes*c.Links
	l.PeakEnergy = l.PumpEnergy + PumpRecordBytes*c.Pumps
	l.Results = l.PeakEnergy + peakEnergyBytes
	l.FrameBytes = WordBytes * (NodeChannels*c.Nodes + LinkChannels*c.Links)
	return l
}

// NodeValueOffset locates channel ch of node i in the given period.
func (l Layout) NodeValueOffset(period, ch, i int) int {
	return l.Results + period*l.FrameBytes + WordBytes*i + WordBytes*ch*l.Counts.Nodes
}

// LinkValueOffset locates channel ch of link j in the given period.
func (l Layout) LinkValueOffset(period, ch, j int) int {
	return l.Results + period*l.FrameBytes + WordBytes*NodeChannels*l.Counts.Nodes +
		WordBytes*j + WordBytes*ch*l.Counts.Links
}

// ResultsFit reports whether periods frames starting at Results fit in size
// bytes. It avoids the multiplication so hostile counts cannot overflow.
func (l Layout) ResultsFit(periods, size int) bool {
	if periods < 0 || l.Results > size {
		return false
	}
	if l.FrameBytes == 0 || periods == 0 {
		return true
	}
	return periods <= (size-l.Results)/l.FrameBytes
}
