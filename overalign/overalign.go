// Package overalign implements the over-alignment trimmer: it seeds on
// vertices whose block is too tangled (high degree, low tree coverage),
// extends a distance frontier outward along grey edges, and splits the
// surviving blocks apart (spec.md §4.6).
package overalign

import (
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// CoverageFunc scores a vertex's tree coverage (see the coverage package).
type CoverageFunc func(v *pinchgraph.Vertex) (float64, error)

// Config holds the trimmer's tunable thresholds (spec.md §4.6).
type Config struct {
	MinTreeCoverage float64
	MaxDegree       int
	ExtensionSteps  int
}

// Trimmer runs the over-alignment trimmer against a graph.
type Trimmer struct {
	Graph    *pinchgraph.Graph
	Coverage CoverageFunc
	Config   Config
}

// NewTrimmer returns a Trimmer over g using cov to score tree coverage.
func NewTrimmer(g *pinchgraph.Graph, cov CoverageFunc, cfg Config) *Trimmer {
	return &Trimmer{Graph: g, Coverage: cov, Config: cfg}
}

// Trim runs the full seed/extend/filter/split pipeline (spec.md §4.6),
// folding in extraSeeds as client-supplied additional seed vertices. It
// returns the new singleton vertices created by the split step.
func (t *Trimmer) Trim(extraSeeds []*pinchgraph.Vertex) ([]*pinchgraph.Vertex, error) {
	distance, err := t.seed(extraSeeds)
	if err != nil {
		return nil, err
	}

	t.extend(distance)

	survivors := t.filter(distance)

	var created []*pinchgraph.Vertex
	for _, v := range survivors {
		nv, err := splitMultipleBlackEdges(t.Graph, v)
		if err != nil {
			return nil, err
		}
		created = append(created, nv...)
	}
	if err := removeTrivialGreyEdgeComponents(t.Graph, created); err != nil {
		return nil, err
	}

	return created, nil
}

// seed implements spec.md §4.6 steps 1-2: collect vertices whose block is
// over-degree or under tree-covered, plus any client-supplied extras,
// recording distance 0 for both endpoints of each selected block.
func (t *Trimmer) seed(extraSeeds []*pinchgraph.Vertex) (map[*pinchgraph.Vertex]int, error) {
	distance := make(map[*pinchgraph.Vertex]int)

	for _, v := range t.Graph.InteriorVertices() {
		fe := v.FirstBlackEdge()
		if fe == nil || fe.IsStub() {
			continue
		}
		cov, err := t.Coverage(v)
		if err != nil {
			return nil, err
		}
		if v.BlackDegree() > t.Config.MaxDegree || cov < t.Config.MinTreeCoverage {
			distance[v] = 0
			distance[fe.To] = 0
		}
	}

	for _, v := range extraSeeds {
		fe := v.FirstBlackEdge()
		if fe == nil || fe.IsStub() {
			continue
		}
		if _, ok := distance[v]; !ok {
			distance[v] = 0
		}
		if _, ok := distance[fe.To]; !ok {
			distance[fe.To] = 0
		}
	}

	return distance, nil
}

// extend implements spec.md §4.6 step 3: a label-correcting relaxation
// over the distance map, walking grey neighbours from every vertex whose
// distance is still below ExtensionSteps, stopping at a fixpoint detected
// by a 10-iteration cooldown once no distance changes.
func (t *Trimmer) extend(distance map[*pinchgraph.Vertex]int) {
	const cooldownStart = 10
	cooldown := cooldownStart

	for cooldown > 0 {
		changed := false

		frontier := make([]*pinchgraph.Vertex, 0, len(distance))
		for v := range distance {
			frontier = append(frontier, v)
		}

		for _, v := range frontier {
			d := distance[v]
			if d >= t.Config.ExtensionSteps {
				continue
			}
			for _, n := range v.GreyEdges() {
				nfe := n.FirstBlackEdge()
				if nfe == nil || nfe.IsStub() {
					continue
				}
				if lower(distance, n, d) {
					changed = true
				}
				if lower(distance, nfe.To, d+nfe.Length()) {
					changed = true
				}
			}
		}

		if changed {
			cooldown = cooldownStart
		} else {
			cooldown--
		}
	}
}

// lower records candidate as v's distance if v has none yet, or if
// candidate improves on the stored value. Reports whether it changed.
func lower(distance map[*pinchgraph.Vertex]int, v *pinchgraph.Vertex, candidate int) bool {
	cur, ok := distance[v]
	if !ok || candidate < cur {
		distance[v] = candidate
		return true
	}
	return false
}

// filter implements spec.md §4.6 step 4: retain only vertices whose block
// has multiplicity (black degree > 1); single-degree blocks are already
// minimal.
func (t *Trimmer) filter(distance map[*pinchgraph.Vertex]int) []*pinchgraph.Vertex {
	var survivors []*pinchgraph.Vertex
	for v := range distance {
		if v.BlackDegree() > 1 {
			survivors = append(survivors, v)
		}
	}
	return survivors
}
