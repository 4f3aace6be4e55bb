// Package fixtures builds deterministic synthetic contigs, pairwise
// alignments, and event trees for this module's own tests and for
// downstream integration tests, generalizing the teacher library's
// functional-options-plus-seeded-*rand.Rand builder idiom from "build toy
// generic graphs" to "build toy genomes" (SPEC_FULL.md §3.2). Nothing in
// this package is used by production code paths.
package fixtures

import (
	"math/rand"
	"strconv"

	"github.com/cactuscore/pinchgraph/align"
	"github.com/cactuscore/pinchgraph/event"
	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// Option customizes a builder's behaviour. As a rule, option constructors
// never panic and ignore nonsensical inputs rather than raise at
// construction time (mirroring the teacher's BuilderOption contract);
// validation happens in the builder itself where it can return an error.
type Option func(*config)

type config struct {
	rng          *rand.Rand
	branchLength float64
	indelLength  int
	indelEvery   int
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		rng:          rand.New(rand.NewSource(1)),
		branchLength: 1.0,
		indelLength:  2,
		indelEvery:   0, // 0 = no indels; WithIndels enables them
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSeed sets the deterministic RNG seed backing any randomised choice a
// builder in this package makes (spec.md §5's "seed for any randomised
// adjacency-component selection" — fixtures reuses the same discipline for
// its own synthetic randomness).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithBranchLength sets the default branch length EventTree assigns to
// generated nodes when no explicit length is supplied.
func WithBranchLength(bl float64) Option {
	return func(c *config) {
		if bl > 0 {
			c.branchLength = bl
		}
	}
}

// WithIndels makes RandomAlignment cut its match into runs of every bases
// and splice an indel of the given length between consecutive runs
// (every <= 0 disables indels again).
func WithIndels(every, length int) Option {
	return func(c *config) {
		c.indelEvery = every
		if length > 0 {
			c.indelLength = length
		}
	}
}

// Contig is one synthetic sequence registered into a fixture Graph: its
// name, length, and the dead-end vertices AddContig returned.
type Contig struct {
	Name        piece.Name
	Length      int
	Left, Right *pinchgraph.Vertex
}

// Graph builds a fresh pinch graph with one contig per entry in lengths,
// named 1..len(lengths) in order.
func Graph(lengths ...int) (*pinchgraph.Graph, []Contig, error) {
	g := pinchgraph.NewGraph()
	contigs := make([]Contig, 0, len(lengths))
	for i, l := range lengths {
		name := piece.Name(i + 1)
		left, right, err := g.AddContig(name, l)
		if err != nil {
			return nil, nil, err
		}
		contigs = append(contigs, Contig{Name: name, Length: l, Left: left, Right: right})
	}
	return g, contigs, nil
}

// WholeContigAlignment returns a full-length MATCH alignment between two
// equal-length contigs. Both Start/End pairs are always ascending (the
// running-position convention align.Validate and merge.Driver walk);
// reverse2 only flips Strand2, so the driver reads contig2's piece via its
// reverse twin (spec.md §3's twin convention) rather than by inverting the
// declared coordinates.
func WholeContigAlignment(c1, c2 piece.Name, length int, reverse2 bool) *align.PairwiseAlignment {
	return &align.PairwiseAlignment{
		Contig1: c1, Contig2: c2,
		Start1: 1, End1: length + 1,
		Start2: 1, End2: length + 1,
		Strand1: true, Strand2: !reverse2,
		Ops: []align.Op{{Type: align.Match, Length: length}},
	}
}

// RandomAlignment returns a forward/forward alignment covering length bases
// of each contig starting at 1, splicing deterministic (seeded) indels in
// per WithIndels, so Driver.Run exercises INDEL_X/INDEL_Y handling as well
// as MATCH runs. The returned alignment always satisfies Validate().
func RandomAlignment(c1, c2 piece.Name, length int, opts ...Option) *align.PairwiseAlignment {
	cfg := newConfig(opts...)

	var ops []align.Op
	j, k := 1, 1
	remaining := length
	runLen := length
	if cfg.indelEvery > 0 {
		runLen = cfg.indelEvery
	}

	for remaining > 0 {
		m := runLen
		if m > remaining {
			m = remaining
		}
		ops = append(ops, align.Op{Type: align.Match, Length: m})
		j += m
		k += m
		remaining -= m

		if remaining > 0 && cfg.indelEvery > 0 {
			if cfg.rng.Intn(2) == 0 {
				ops = append(ops, align.Op{Type: align.InsertX, Length: cfg.indelLength})
				k += cfg.indelLength
			} else {
				ops = append(ops, align.Op{Type: align.InsertY, Length: cfg.indelLength})
				j += cfg.indelLength
			}
		}
	}

	return &align.PairwiseAlignment{
		Contig1: c1, Contig2: c2,
		Start1: 1, End1: j,
		Start2: 1, End2: k,
		Strand1: true, Strand2: true,
		Ops: ops,
	}
}

// LinearEventTree builds a root -> e1 -> e2 -> ... -> eN chain of n events,
// each with branch length cfg.branchLength (or WithBranchLength's override),
// and returns the tree plus the chain in root-to-leaf order (index 0 is the
// root).
func LinearEventTree(n int, opts ...Option) (*event.Tree, []*event.Event) {
	cfg := newConfig(opts...)
	root := event.NewEvent(0, "root", 0)
	chain := []*event.Event{root}
	cur := root
	for i := 1; i <= n; i++ {
		e := event.NewEvent(i, eventName(i), cfg.branchLength)
		cur.AddChild(e)
		chain = append(chain, e)
		cur = e
	}
	return event.NewTree(root), chain
}

// BalancedEventTree builds a complete depth-level, branching-ary tree
// (root at depth 0), every non-root edge carrying cfg.branchLength, and
// returns the tree plus every event in breadth-first order (index 0 is the
// root).
func BalancedEventTree(depth, branching int, opts ...Option) (*event.Tree, []*event.Event) {
	cfg := newConfig(opts...)
	root := event.NewEvent(0, "root", 0)
	all := []*event.Event{root}
	frontier := []*event.Event{root}
	id := 1
	for d := 0; d < depth; d++ {
		var next []*event.Event
		for _, parent := range frontier {
			for b := 0; b < branching; b++ {
				e := event.NewEvent(id, eventName(id), cfg.branchLength)
				parent.AddChild(e)
				all = append(all, e)
				next = append(next, e)
				id++
			}
		}
		frontier = next
	}
	return event.NewTree(root), all
}

func eventName(id int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if id >= 1 && id <= len(letters) {
		return string(letters[id-1])
	}
	return "E" + strconv.Itoa(id)
}
