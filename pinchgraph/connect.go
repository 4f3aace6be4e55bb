package pinchgraph

// ConnectVertices adds a grey edge between v1 and v2, symmetrically
// (I2). A no-op if they are already grey-adjacent or identical.
func (g *Graph) ConnectVertices(v1, v2 *Vertex) {
	if v1 == v2 {
		return
	}
	v1.grey[v2] = struct{}{}
	v2.grey[v1] = struct{}{}
}

// DisconnectVertices removes the grey edge between v1 and v2, if present.
func (g *Graph) DisconnectVertices(v1, v2 *Vertex) {
	delete(v1.grey, v2)
	delete(v2.grey, v1)
}
