// Package component maintains the adjacency-component index: a lazily
// resolved map from pinch-graph vertex to the set of component ids it
// belongs to, plus a component-level proximity graph used by the pinch
// merge algorithm's overlap precondition (spec.md §4.4, §4.5).
package component

import (
	"github.com/spakin/disjoint"

	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// ID identifies an adjacency component. IDs are never reused, but two IDs
// may become equivalent over the index's lifetime (see Find).
type ID int

// Index tracks vertex -> component-id-set labels, lazily filling in
// vertices created after the index's initial seeding, and a proximity
// graph over components used by ComponentsWithin.
type Index struct {
	labels map[*pinchgraph.Vertex]map[ID]struct{}
	elems  map[ID]*disjoint.Element
	owner  map[*disjoint.Element]ID
	nextID ID
	adj    map[ID]map[ID]struct{}
}

// NewIndex returns an empty index with no seeded components.
func NewIndex() *Index {
	return &Index{
		labels: make(map[*pinchgraph.Vertex]map[ID]struct{}),
		elems:  make(map[ID]*disjoint.Element),
		owner:  make(map[*disjoint.Element]ID),
		adj:    make(map[ID]map[ID]struct{}),
	}
}

func (ix *Index) newID() ID {
	id := ix.nextID
	ix.nextID++
	e := disjoint.NewElement()
	ix.elems[id] = e
	ix.owner[e] = id
	return id
}

// Find returns id's current canonical representative: two ids that have
// been unioned together (directly or transitively, via a pocket of
// unlabelled vertices bridging them, see ensure) always resolve to the same
// representative.
func (ix *Index) Find(id ID) ID {
	return ix.owner[ix.elems[id].Find()]
}

func (ix *Index) unionIDs(a, b ID) ID {
	ix.elems[a].Union(ix.elems[b])
	return ix.Find(a)
}

// Seed allocates a fresh component id and labels every given vertex with it.
// Used to establish the index's initial granularity (e.g. one component per
// originally unattached contig) before any splits or merges occur.
func (ix *Index) Seed(vs ...*pinchgraph.Vertex) ID {
	id := ix.newID()
	for _, v := range vs {
		ix.addLabel(v, id)
	}
	return id
}

func (ix *Index) addLabel(v *pinchgraph.Vertex, id ID) {
	set := ix.labels[v]
	if set == nil {
		set = make(map[ID]struct{})
		ix.labels[v] = set
	}
	set[id] = struct{}{}
}

// Labels returns a copy of v's current component-id set, resolving it first
// if v was created (by a split) after the index last labelled its
// neighbourhood.
func (ix *Index) Labels(v *pinchgraph.Vertex) map[ID]struct{} {
	ix.ensure(v)
	out := make(map[ID]struct{}, len(ix.labels[v]))
	for id := range ix.labels[v] {
		out[id] = struct{}{}
	}
	return out
}

// ensure gives v a label set if it doesn't have one yet, by walking the
// alternating black/grey trail outward from v until a labelled vertex is
// found in every direction, and copying the union of whatever labels were
// found onto every unlabelled vertex discovered along the way (spec.md
// §4.4). If that discovery touches more than one distinct component id,
// those ids are the same underlying component after all (the pocket proves
// they're connected through nothing but fresh, as-yet-unlabelled structure)
// and are unioned.
func (ix *Index) ensure(v *pinchgraph.Vertex) {
	if _, ok := ix.labels[v]; ok {
		return
	}

	var pocket []*pinchgraph.Vertex
	seen := map[*pinchgraph.Vertex]bool{v: true}
	boundary := make(map[ID]struct{})
	queue := []*pinchgraph.Vertex{v}

	visit := func(n *pinchgraph.Vertex) {
		if seen[n] {
			return
		}
		seen[n] = true
		if set, ok := ix.labels[n]; ok {
			for id := range set {
				boundary[id] = struct{}{}
			}
			return
		}
		queue = append(queue, n)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		pocket = append(pocket, cur)
		for _, e := range cur.BlackEdges() {
			visit(e.To)
		}
		for _, n := range cur.GreyEdges() {
			visit(n)
		}
	}

	switch len(boundary) {
	case 0:
		boundary[ix.newID()] = struct{}{}
	default:
		if len(boundary) > 1 {
			ids := make([]ID, 0, len(boundary))
			for id := range boundary {
				ids = append(ids, id)
			}
			canon := ids[0]
			for _, id := range ids[1:] {
				canon = ix.unionIDs(canon, id)
			}
			boundary = map[ID]struct{}{canon: {}}
		}
	}

	for _, p := range pocket {
		set := make(map[ID]struct{}, len(boundary))
		for id := range boundary {
			set[id] = struct{}{}
		}
		ix.labels[p] = set
	}
}

// OnMerge must be called whenever the caller merges v1 and v2 into v3 (e.g.
// via pinchgraph.Graph.MergeVertices), so v3 inherits the union of v1's and
// v2's component labels (spec.md §4.4).
func (ix *Index) OnMerge(v1, v2, v3 *pinchgraph.Vertex) {
	ix.ensure(v1)
	ix.ensure(v2)
	merged := make(map[ID]struct{}, len(ix.labels[v1])+len(ix.labels[v2]))
	for id := range ix.labels[v1] {
		merged[id] = struct{}{}
	}
	for id := range ix.labels[v2] {
		merged[id] = struct{}{}
	}
	delete(ix.labels, v1)
	delete(ix.labels, v2)
	ix.labels[v3] = merged
}

// NotifyGreyEdge must be called whenever the caller adds a grey edge between
// v1 and v2 (e.g. via pinchgraph.Graph.ConnectVertices) that may bridge two
// distinct components, so the component-level proximity graph stays
// current. It is harmless to call when the two vertices turn out to share
// a component.
func (ix *Index) NotifyGreyEdge(v1, v2 *pinchgraph.Vertex) {
	ix.ensure(v1)
	ix.ensure(v2)
	for a := range ix.labels[v1] {
		fa := ix.Find(a)
		for b := range ix.labels[v2] {
			fb := ix.Find(b)
			if fa == fb {
				continue
			}
			ix.connectAdj(fa, fb)
		}
	}
}

func (ix *Index) connectAdj(a, b ID) {
	if ix.adj[a] == nil {
		ix.adj[a] = make(map[ID]struct{})
	}
	if ix.adj[b] == nil {
		ix.adj[b] = make(map[ID]struct{})
	}
	ix.adj[a][b] = struct{}{}
	ix.adj[b][a] = struct{}{}
}

// ComponentsWithin reports whether a and b name the same component, or are
// connected by a path of length <= N in the component proximity graph
// (spec.md §4.4). N == 0 means strict equality.
func (ix *Index) ComponentsWithin(a, b ID, n int) bool {
	fa, fb := ix.Find(a), ix.Find(b)
	if fa == fb {
		return true
	}
	if n <= 0 {
		return false
	}

	visited := map[ID]bool{fa: true}
	frontier := []ID{fa}
	for depth := 0; depth < n && len(frontier) > 0; depth++ {
		var next []ID
		for _, c := range frontier {
			for nb := range ix.adj[c] {
				fnb := ix.Find(nb)
				if fnb == fb {
					return true
				}
				if !visited[fnb] {
					visited[fnb] = true
					next = append(next, fnb)
				}
			}
		}
		frontier = next
	}
	return false
}

// SetsOverlap reports whether any member of setA is within n of any member
// of setB (spec.md §4.4: "Two sets overlap when any pair of members is
// within N").
func (ix *Index) SetsOverlap(setA, setB map[ID]struct{}, n int) bool {
	for a := range setA {
		for b := range setB {
			if ix.ComponentsWithin(a, b, n) {
				return true
			}
		}
	}
	return false
}
