// Package piece models an oriented closed interval on a contig: the unit
// a pinch graph's black edges carry.
//
// A Piece is value-typed in spirit but lives as a pointer because it shares
// identity with its reverse twin: recycling one rebinds the other. Contig
// names are positive integers on the forward strand; a piece on the reverse
// strand carries the negated contig name and swapped, negated coordinates,
// so that -k always denotes position k read on the opposite strand.
package piece

import "fmt"

// Name identifies a contig. Positive values address the forward strand;
// the corresponding negative value addresses the reverse strand of the
// same contig.
type Name int

// Piece is an interval [Start, End] on Contig, together with a pointer to
// its reverse twin. On the forward strand Start <= End; on the reverse
// strand the pair is carried in negative numbering as required by Recycle.
type Piece struct {
	Contig Name
	Start  int
	End    int

	twin *Piece
}

// NewPair allocates a forward/reverse Piece pair covering [start, end] on
// contig (start <= end), wired together as reverse twins.
func NewPair(contig Name, start, end int) *Piece {
	if start > end {
		panic(fmt.Sprintf("piece: NewPair requires start<=end, got [%d,%d]", start, end))
	}
	fwd := &Piece{Contig: contig, Start: start, End: end}
	rev := &Piece{Contig: -contig, Start: -end, End: -start}
	fwd.twin = rev
	rev.twin = fwd
	return fwd
}

// Reverse returns p's twin: the same interval read on the opposite strand.
func (p *Piece) Reverse() *Piece {
	return p.twin
}

// Length returns the number of bases the piece covers.
func (p *Piece) Length() int {
	d := p.End - p.Start
	if d < 0 {
		d = -d
	}
	return d + 1
}

// Recycle rebinds p (and, in lockstep, p's twin) to a new forward interval
// without reallocating either piece. contig/start/end describe the forward
// orientation (start <= end); Recycle derives the reverse twin's fields
// from the negation convention so the twin relation documented on Piece is
// preserved across reuse.
func (p *Piece) Recycle(contig Name, start, end int) {
	if start > end {
		panic(fmt.Sprintf("piece: Recycle requires start<=end, got [%d,%d]", start, end))
	}
	fwd, rev := p, p.twin
	if p.Contig < 0 {
		fwd, rev = p.twin, p
	}
	fwd.Contig = contig
	fwd.Start = start
	fwd.End = end
	rev.Contig = -contig
	rev.Start = -end
	rev.End = -start
}

// Sub returns a new, independently-recyclable pair covering the sub-interval
// [start, end] of the same contig as p's forward orientation. It does not
// share identity with p; callers that need twin-sharing semantics should use
// NewPair directly.
func (p *Piece) Sub(start, end int) *Piece {
	fwd := p
	if p.Contig < 0 {
		fwd = p.twin
	}
	return NewPair(fwd.Contig, start, end)
}

// String renders the piece as "<contig>:<start>-<end>" for diagnostics.
func (p *Piece) String() string {
	return fmt.Sprintf("%d:%d-%d", p.Contig, p.Start, p.End)
}
