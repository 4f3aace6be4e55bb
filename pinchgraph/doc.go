// Package pinchgraph implements the bidirected multigraph at the center of
// the alignment engine: vertices joined by black edges (aligned sequence
// segments) and grey edges (adjacencies on the input contigs).
//
// Unlike a general-purpose graph library, Graph is deliberately
// single-threaded: rewrites (SplitEdge, MergeVertices, ConnectVertices,
// DisconnectVertices) mutate shared structure in place and are not safe to
// call concurrently on the same Graph, by design — see spec.md §5. Callers
// that need concurrent access must serialize it themselves.
//
// Invariants I1-I5 (every black edge is filed under its From vertex and its
// reverse under its To vertex; grey adjacency is symmetric; an interior
// vertex's black edges all carry same-length pieces; a contig's pieces
// partition it with no gaps; stub edges touch dead-end vertices only) are
// preserved by every exported mutator. A mutator that cannot preserve them
// panics with an *InvariantError naming the offending operator and vertex
// IDs, per spec.md §7 — such a panic means the graph must be discarded.
package pinchgraph
