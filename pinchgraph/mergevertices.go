package pinchgraph

// MergeVertices unions v1 and v2 into a freshly allocated vertex v3 whose
// black-edge and grey-edge sets are the union of v1's and v2's, then
// destroys v1 and v2. If v1 == v2, it is returned unchanged (spec.md
// §4.2). Merging a dead-end or sink vertex is a precondition violation:
// those are permanent per spec.md §3 Lifecycle, so they are never
// produced by this call as v1/v2 once this invariant is honored upstream,
// but the check is kept here as the last line of defense.
func (g *Graph) MergeVertices(v1, v2 *Vertex) *Vertex {
	if v1 == v2 {
		return v1
	}
	if v1.Kind != Interior || v2.Kind != Interior {
		invariantPanic("MergeVertices", "dead-end/sink vertices cannot be merged", v1.ID, v2.ID)
	}

	v3 := g.newVertex(Interior)

	for _, v := range [2]*Vertex{v1, v2} {
		for e := range v.black {
			e.From = v3
			e.Rev.To = v3
			v3.black[e] = struct{}{}
		}
		for n := range v.grey {
			if n == v1 || n == v2 {
				// A grey edge directly between v1 and v2 collapses into a
				// self-adjacency, which pinch graphs do not represent;
				// drop it rather than give v3 a grey edge to itself.
				delete(n.grey, v)
				continue
			}
			delete(n.grey, v)
			n.grey[v3] = struct{}{}
			v3.grey[n] = struct{}{}
		}
	}

	v1.black, v1.grey = nil, nil
	v2.black, v2.grey = nil, nil
	delete(g.vertices, v1.ID)
	delete(g.vertices, v2.ID)

	return v3
}
