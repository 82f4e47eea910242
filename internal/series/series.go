// Package series extracts per-element time series out of the results block.
package series

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/qatium/epanet-go/internal/binio"
	"github.com/qatium/epanet-go/internal/format"
)

// Extractor reads values from a results block whose extent has been checked.
type Extractor struct {
	r       binio.Reader
	layout  format.Layout
	periods int
}

// New checks that periods frames fit in the buffer after layout.Results.
func New(r binio.Reader, layout format.Layout, periods int) (*Extractor, error) {
	if !layout.ResultsFit(periods, r.Len()) {
		return nil, format.Malformed("results", layout.Results,
			"%d periods of %d bytes do not fit in a buffer of %d", periods, layout.FrameBytes, r.Len())
	}
	return &Extractor{r: r, layout: layout, periods: periods}, nil
}

// Periods returns the number of reporting periods.
func (e *Extractor) Periods() int { return e.periods }

// NodeInto fills dst with channel ch of node i, one value per period.
func (e *Extractor) NodeInto(dst []float32, i int, ch NodeChannel) {
	off := e.layout.NodeValueOffset(0, int(ch), i)
	for p := range dst[:e.periods] {
		dst[p] = e.r.Float32At(off)
		off += e.layout.FrameBytes
	}
}

// LinkInto fills dst with channel ch of link j, one value per period.
func (e *Extractor) LinkInto(dst []float32, j int, ch LinkChannel) {
	off := e.layout.LinkValueOffset(0, int(ch), j)
	for p := range dst[:e.periods] {
		dst[p] = e.r.Float32At(off)
		off += e.layout.FrameBytes
	}
}

// Node returns channel ch of node i.
func (e *Extractor) Node(i int, ch NodeChannel) []float32 {
	out := make([]float32, e.periods)
	e.NodeInto(out, i, ch)
	return out
}

// Link returns channel ch of link j.
func (e *Extractor) Link(j int, ch LinkChannel) []float32 {
	out := make([]float32, e.periods)
	e.LinkInto(out, j, ch)
	return out
}

// NodeSeries holds every channel of one node, indexed by NodeChannel.
type NodeSeries [format.NodeChannels][]float32

// LinkSeries holds every channel of one link, indexed by LinkChannel.
type LinkSeries [format.LinkChannels][]float32

// All extracts every channel of every node and link. Each element class is
// backed by one allocation; the work is split into contiguous shards run on
// at most workers goroutines (GOMAXPROCS when workers <= 0).
func (e *Extractor) All(ctx context.Context, workers int) ([]NodeSeries, []LinkSeries, error) {
	nodeCount, linkCount := e.layout.Counts.Nodes, e.layout.Counts.Links
	nodes := make([]NodeSeries, nodeCount)
	links := make([]LinkSeries, linkCount)
	nodeBacking := make([]float32, nodeCount*format.NodeChannels*e.periods)
	linkBacking := make([]float32, linkCount*format.LinkChannels*e.periods)

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, s := range shards(nodeCount, workers) {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := s.lo; i < s.hi; i++ {
				base := i * format.NodeChannels * e.periods
				for _, ch := range NodeChannels {
					off := base + int(ch)*e.periods
					dst := nodeBacking[off : off+e.periods : off+e.periods]
					e.NodeInto(dst, i, ch)
					nodes[i][ch] = dst
				}
			}
			return nil
		})
	}
	for _, s := range shards(linkCount, workers) {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := s.lo; j < s.hi; j++ {
				base := j * format.LinkChannels * e.periods
				for _, ch := range LinkChannels {
					off := base + int(ch)*e.periods
					dst := linkBacking[off : off+e.periods : off+e.periods]
					e.LinkInto(dst, j, ch)
					links[j][ch] = dst
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return nodes, links, nil
}

type shard struct{ lo, hi int }

// shards splits n items into at most k contiguous ranges.
func shards(n, k int) []shard {
	if n == 0 {
		return nil
	}
	if k > n {
		k = n
	}
	size := (n + k - 1) / k
	out := make([]shard, 0, k)
	for lo := 0; lo < n; lo += size {
		out = append(out, shard{lo: lo, hi: min(lo+size, n)})
	}
	return out
}
