// Package stublink links each adjacency component's longest sequence to
// the graph's sink vertex, and undoes that linkage, per spec.md §4.8.
package stublink

import (
	"github.com/cactuscore/pinchgraph/component"
	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// End tracks the cactus "attached" bit for a sequence terminus (spec.md
// §5.3's Cap/End distinction: a dead-end vertex is a stub by construction —
// its sole black edge is always a stub edge — but whether its End has been
// pinned to the sink is separate bookkeeping this type carries).
type End struct {
	Attached bool
}

// LinkStubComponentsToSink implements spec.md §4.8's forward direction.
// For every adjacency component that does not already contain the sink,
// it finds the longest sequence with a terminus in that component and
// grey-connects every dead-end vertex belonging to that sequence to the
// sink. If attachEnds is set, the corresponding End (allocated into ends
// if not already present) is marked Attached. Returns the number of grey
// edges added.
func LinkStubComponentsToSink(g *pinchgraph.Graph, ix *component.Index, ends map[*pinchgraph.Vertex]*End, attachEnds bool) (int, error) {
	groups := make(map[component.ID][]*pinchgraph.Vertex)
	sink := g.Sink()
	sinkComponents := ix.Labels(sink)

	for _, v := range g.DeadEndVertices() {
		if v == sink {
			continue
		}
		canons := make(map[component.ID]struct{})
		for id := range ix.Labels(v) {
			canons[ix.Find(id)] = struct{}{}
		}
		for canon := range canons {
			if inSinkComponent(canon, sinkComponents, ix) {
				continue
			}
			groups[canon] = append(groups[canon], v)
		}
	}

	added := 0
	for _, members := range groups {
		target := longestSequenceContig(g, members)
		if target == 0 {
			continue
		}
		for _, v := range members {
			if stubContig(v) != target {
				continue
			}
			if !v.HasGreyEdge(sink) {
				g.ConnectVertices(v, sink)
				ix.NotifyGreyEdge(v, sink)
				added++
			}
			if attachEnds {
				e := ends[v]
				if e == nil {
					e = &End{}
					ends[v] = e
				}
				e.Attached = true
			}
		}
	}
	return added, nil
}

// UnlinkStubComponentsFromSink implements spec.md §4.8's inverse: every
// dead-end vertex whose End is free (absent or not Attached) and whose
// sole grey edge connects it to the sink is disconnected.
func UnlinkStubComponentsFromSink(g *pinchgraph.Graph, ends map[*pinchgraph.Vertex]*End) int {
	sink := g.Sink()
	removed := 0
	for _, v := range g.DeadEndVertices() {
		if v == sink {
			continue
		}
		if e := ends[v]; e != nil && e.Attached {
			continue
		}
		if v.GreyDegree() == 1 && v.HasGreyEdge(sink) {
			g.DisconnectVertices(v, sink)
			removed++
		}
	}
	return removed
}

func inSinkComponent(canon component.ID, sinkLabels map[component.ID]struct{}, ix *component.Index) bool {
	for id := range sinkLabels {
		if ix.Find(id) == canon {
			return true
		}
	}
	return false
}

// stubContig returns the forward contig name a dead-end vertex's sole
// black edge belongs to.
func stubContig(v *pinchgraph.Vertex) piece.Name {
	e := v.FirstBlackEdge()
	if e == nil {
		return 0
	}
	c := e.Piece.Contig
	if c < 0 {
		c = -c
	}
	return c
}

// longestSequenceContig returns the contig name, among members' stub
// contigs, whose registered length is greatest (0 if members is empty or
// none have a registered length).
func longestSequenceContig(g *pinchgraph.Graph, members []*pinchgraph.Vertex) piece.Name {
	var best piece.Name
	bestLen := -1
	for _, v := range members {
		c := stubContig(v)
		if c == 0 {
			continue
		}
		l, ok := g.ContigLength(c)
		if !ok {
			continue
		}
		if l > bestLen {
			bestLen = l
			best = c
		}
	}
	return best
}
