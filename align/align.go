// Package align models a pairwise sequence alignment: the upstream
// interface spec.md §6 assumes `pinchMerge`'s driver consumes (spec.md
// §4.5).
package align

import (
	"errors"
	"fmt"

	"github.com/cactuscore/pinchgraph/piece"
)

// ErrEmptyAlignment is returned by Validate when an alignment has no
// operations.
var ErrEmptyAlignment = errors.New("align: alignment has no operations")

// ErrNonPositiveOpLength is returned by Validate when an operation's length
// is not positive.
var ErrNonPositiveOpLength = errors.New("align: operation length must be positive")

// ErrOpsDontReachEnd is returned by Validate when walking the operation
// list from (Start1, Start2) does not land on (End1, End2).
var ErrOpsDontReachEnd = errors.New("align: operations do not reach the declared end coordinates")

// OpType classifies one alignment operation.
type OpType int

const (
	// Match advances both contigs: an aligned, equal-length segment pair.
	Match OpType = iota
	// InsertX advances contig2's running position only (spec.md §4.5: "for
	// INDEL_X advance k only").
	InsertX
	// InsertY advances contig1's running position only (spec.md §4.5: "for
	// INDEL_Y advance j only").
	InsertY
)

func (t OpType) String() string {
	switch t {
	case Match:
		return "MATCH"
	case InsertX:
		return "INDEL_X"
	case InsertY:
		return "INDEL_Y"
	default:
		return "UNKNOWN"
	}
}

// Op is one run-length operation in an alignment's CIGAR-like op list.
type Op struct {
	Type   OpType
	Length int
}

// PairwiseAlignment describes an alignment between a region of Contig1 and
// a region of Contig2, each possibly on the reverse strand (spec.md §4.5's
// pinchMerge driver input).
type PairwiseAlignment struct {
	Contig1, Contig2 piece.Name
	Start1, End1     int
	Start2, End2     int
	Strand1, Strand2 bool // true = forward strand
	Ops              []Op
}

// Validate checks that every op has a positive length and that walking the
// op list from (Start1, Start2) lands exactly on (End1, End2), surfacing a
// precondition-violation error before merge.Driver ever touches a graph
// (spec.md §7).
func (a *PairwiseAlignment) Validate() error {
	if len(a.Ops) == 0 {
		return ErrEmptyAlignment
	}

	j, k := a.Start1, a.Start2
	for i, op := range a.Ops {
		if op.Length <= 0 {
			return fmt.Errorf("%w: op %d has length %d", ErrNonPositiveOpLength, i, op.Length)
		}
		switch op.Type {
		case Match:
			j += op.Length
			k += op.Length
		case InsertX:
			k += op.Length
		case InsertY:
			j += op.Length
		default:
			return fmt.Errorf("align: op %d has unknown type %v", i, op.Type)
		}
	}

	if j != a.End1 || k != a.End2 {
		return fmt.Errorf("%w: walked to (%d, %d), declared end is (%d, %d)", ErrOpsDontReachEnd, j, k, a.End1, a.End2)
	}
	return nil
}
