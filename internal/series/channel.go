package series

import (
	"fmt"
	"strings"
)

// NodeChannel is a node result quantity, in frame order.
type NodeChannel int

const (
	Demand NodeChannel = iota
	Head
	Pressure
	WaterQuality
)

// NodeChannels lists every node channel in frame order.
var NodeChannels = []NodeChannel{Demand, Head, Pressure, WaterQuality}

var nodeChannelNames = []string{"demand", "head", "pressure", "waterQuality"}

func (c NodeChannel) String() string {
	if c >= 0 && int(c) < len(nodeChannelNames) {
		return nodeChannelNames[c]
	}
	return fmt.Sprintf("nodeChannel(%d)", int(c))
}

// LinkChannel is a link result quantity, in frame order.
type LinkChannel int

const (
	Flow LinkChannel = iota
	Velocity
	Headloss
	AvgWaterQuality
	Status
	Setting
	ReactionRate
	Friction
)

// LinkChannels lists every link channel in frame order.
var LinkChannels = []LinkChannel{Flow, Velocity, Headloss, AvgWaterQuality, Status, Setting, ReactionRate, Friction}

var linkChannelNames = []string{"flow", "velocity", "headloss", "avgWaterQuality", "status", "setting", "reactionRate", "friction"}

func (c LinkChannel) String() string {
	if c >= 0 && int(c) < len(linkChannelNames) {
		return linkChannelNames[c]
	}
	return fmt.Sprintf("linkChannel(%d)", int(c))
}

// ParseNodeChannel resolves a channel name, ignoring case.
func ParseNodeChannel(name string) (NodeChannel, error) {
	for i, n := range nodeChannelNames {
		if strings.EqualFold(n, name) {
			return NodeChannel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown node channel %q (want one of %s)", name, strings.Join(nodeChannelNames, ", "))
}

// ParseLinkChannel resolves a channel name, ignoring case.
func ParseLinkChannel(name string) (LinkChannel, error) {
	for i, n := range linkChannelNames {
		if strings.EqualFold(n, name) {
			return LinkChannel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown link channel %q (want one of %s)", name, strings.Join(linkChannelNames, ", "))
}

// LinkStatus is the engine's status code carried by the Status channel.
type LinkStatus int

const (
	StatusClosedMaxHead LinkStatus = iota
	StatusTempClosed
	StatusClosed
	StatusOpen
	StatusActive
	StatusOpenMaxFlow
	StatusOpenMinFlow
	StatusOpenPressureExceeded
)

var linkStatusNames = []string{
	"closed (max head exceeded)", "temporarily closed", "closed", "open",
	"active", "open (max flow exceeded)", "open (flow setting not met)", "open (pressure setting not met)",
}

func (s LinkStatus) String() string {
	if s >= 0 && int(s) < len(linkStatusNames) {
		return linkStatusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// StatusOf converts a Status channel sample to its code.
func StatusOf(v float32) (LinkStatus, bool) {
	s := LinkStatus(v)
	if float32(s) != v || s < 0 || int(s) >= len(linkStatusNames) {
		return 0, false
	}
	return s, true
}

// Closed reports whether the status blocks flow.
func (s LinkStatus) Closed() bool { return s <= StatusClosed }
