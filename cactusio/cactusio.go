// Package cactusio implements the downstream binary serialization interface
// spec.md §6 describes: a tag-byte, length-prefixed, platform-independent
// encoding for cactus objects, readers peeking the tag before consuming.
//
// Encoders exist for three of the seven element kinds: blocks and their
// constituent segments (spec.md §6's "iteration over blocks") and the event
// tree; the remaining tags (end, group, net, chain) are reserved here
// so a downstream writer sharing this wire format can interleave them, even
// though constructing a Net/Group/Chain is explicitly out of this core's
// scope (spec.md §1).
package cactusio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cactuscore/pinchgraph/event"
	"github.com/cactuscore/pinchgraph/piece"
	"github.com/cactuscore/pinchgraph/pinchgraph"
)

// Tag identifies the element type a wire record encodes.
type Tag byte

// Element tags (spec.md §6).
const (
	TagEventTree Tag = iota + 1
	TagBlock
	TagSegment
	TagEnd
	TagGroup
	TagNet
	TagChain
)

func (t Tag) String() string {
	switch t {
	case TagEventTree:
		return "EVENT_TREE"
	case TagBlock:
		return "BLOCK"
	case TagSegment:
		return "SEGMENT"
	case TagEnd:
		return "END"
	case TagGroup:
		return "GROUP"
	case TagNet:
		return "NET"
	case TagChain:
		return "CHAIN"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", byte(t))
	}
}

// ErrUnexpectedTag is returned when a Reader encounters a tag other than
// the one the caller's Decode* function expects (spec.md §7's
// object-store-miss-flavored error class).
var ErrUnexpectedTag = errors.New("cactusio: unexpected tag")

// ErrTruncated is returned when the underlying stream ends mid-record.
var ErrTruncated = errors.New("cactusio: truncated record")

// Writer encodes cactus objects as tag-prefixed, length-prefixed,
// fixed-width big-endian records onto an underlying byte stream.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w in a buffered Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Flush pushes any buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// WriteTag writes a single tag byte.
func (w *Writer) WriteTag(t Tag) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = w.w.Write([]byte{byte(t)})
	return w.err
}

// WriteInt64 writes v as 8 fixed-width big-endian bytes.
func (w *Writer) WriteInt64(v int64) error {
	if w.err != nil {
		return w.err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, w.err = w.w.Write(buf[:])
	return w.err
}

// WriteFloat64 writes v as 8 fixed-width big-endian bytes via its IEEE-754
// bit pattern, for platform independence.
func (w *Writer) WriteFloat64(v float64) error {
	if w.err != nil {
		return w.err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	_, w.err = w.w.Write(buf[:])
	return w.err
}

// WriteString writes s as a uint32 length prefix followed by its bytes.
func (w *Writer) WriteString(s string) error {
	if w.err != nil {
		return w.err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	if _, w.err = w.w.Write(lenBuf[:]); w.err != nil {
		return w.err
	}
	_, w.err = w.w.Write([]byte(s))
	return w.err
}

// Reader decodes records written by Writer.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r in a buffered Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// PeekTag returns the next record's tag without consuming it, so a caller
// can dispatch to the right Decode* function (spec.md §6: "Readers must
// use tag peeking before consuming").
func (r *Reader) PeekTag() (Tag, error) {
	b, err := r.r.Peek(1)
	if err != nil {
		return 0, fmt.Errorf("%w: peeking tag: %v", ErrTruncated, err)
	}
	return Tag(b[0]), nil
}

// ReadTag consumes and returns the next record's tag.
func (r *Reader) ReadTag() (Tag, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: reading tag: %v", ErrTruncated, err)
	}
	return Tag(b), nil
}

// expectTag reads a tag and fails with ErrUnexpectedTag if it isn't want.
func (r *Reader) expectTag(want Tag) error {
	got, err := r.ReadTag()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedTag, want, got)
	}
	return nil
}

// ReadInt64 reads 8 fixed-width big-endian bytes as an int64.
func (r *Reader) ReadInt64() (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading int64: %v", ErrTruncated, err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// ReadFloat64 reads 8 fixed-width big-endian bytes as a float64 via its
// IEEE-754 bit pattern.
func (r *Reader) ReadFloat64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: reading float64: %v", ErrTruncated, err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

// ReadString reads a uint32 length prefix followed by that many bytes.
func (r *Reader) ReadString() (string, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r.r, lenBuf[:]); err != nil {
		return "", fmt.Errorf("%w: reading string length: %v", ErrTruncated, err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return "", fmt.Errorf("%w: reading string body: %v", ErrTruncated, err)
	}
	return string(buf), nil
}

// Segment is one piece on a block's multi-edge: the wire representation of
// a single aligned-segment endpoint pair.
type Segment struct {
	Contig     piece.Name
	Start, End int
}

// EncodeSegment writes s as a SEGMENT record.
func (w *Writer) EncodeSegment(s Segment) error {
	if err := w.WriteTag(TagSegment); err != nil {
		return err
	}
	if err := w.WriteInt64(int64(s.Contig)); err != nil {
		return err
	}
	if err := w.WriteInt64(int64(s.Start)); err != nil {
		return err
	}
	return w.WriteInt64(int64(s.End))
}

// DecodeSegment reads a SEGMENT record, failing with ErrUnexpectedTag if
// the next record isn't one.
func (r *Reader) DecodeSegment() (Segment, error) {
	if err := r.expectTag(TagSegment); err != nil {
		return Segment{}, err
	}
	contig, err := r.ReadInt64()
	if err != nil {
		return Segment{}, err
	}
	start, err := r.ReadInt64()
	if err != nil {
		return Segment{}, err
	}
	end, err := r.ReadInt64()
	if err != nil {
		return Segment{}, err
	}
	return Segment{Contig: piece.Name(contig), Start: int(start), End: int(end)}, nil
}

// Block is the wire representation of the multi-edge between a pair of
// pinch vertices: the endpoint vertex ids and every segment aligned
// between them (spec.md §6's "iteration over blocks").
type Block struct {
	From, To int
	Segments []Segment
}

// EncodeBlock writes b as a BLOCK record followed by one SEGMENT record per
// member of b.Segments.
func (w *Writer) EncodeBlock(b Block) error {
	if err := w.WriteTag(TagBlock); err != nil {
		return err
	}
	if err := w.WriteInt64(int64(b.From)); err != nil {
		return err
	}
	if err := w.WriteInt64(int64(b.To)); err != nil {
		return err
	}
	if err := w.WriteInt64(int64(len(b.Segments))); err != nil {
		return err
	}
	for _, s := range b.Segments {
		if err := w.EncodeSegment(s); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBlock reads a BLOCK record and its following SEGMENT records.
func (r *Reader) DecodeBlock() (Block, error) {
	if err := r.expectTag(TagBlock); err != nil {
		return Block{}, err
	}
	from, err := r.ReadInt64()
	if err != nil {
		return Block{}, err
	}
	to, err := r.ReadInt64()
	if err != nil {
		return Block{}, err
	}
	n, err := r.ReadInt64()
	if err != nil {
		return Block{}, err
	}
	segs := make([]Segment, 0, n)
	for i := int64(0); i < n; i++ {
		s, err := r.DecodeSegment()
		if err != nil {
			return Block{}, err
		}
		segs = append(segs, s)
	}
	return Block{From: int(from), To: int(to), Segments: segs}, nil
}

// BlockFromEdge builds the wire Block for one of pinchgraph.Graph's
// BlockEdges representatives: a block of multiplicity 1 carrying that
// edge's single segment. Callers grouping multiple parallel edges into one
// Block (true block multiplicity) construct Block{} directly instead.
func BlockFromEdge(e *pinchgraph.Edge) Block {
	return Block{
		From: e.From.ID,
		To:   e.To.ID,
		Segments: []Segment{{
			Contig: e.Piece.Contig,
			Start:  e.Piece.Start,
			End:    e.Piece.End,
		}},
	}
}

// EncodeEventTree writes t as an EVENT_TREE record: a preorder walk of
// {id, name, branch length, child count} tuples, so DecodeEventTree can
// rebuild parent/child links by pushing each decoded node under the most
// recently decoded ancestor with remaining child slots.
func (w *Writer) EncodeEventTree(t *event.Tree) error {
	if err := w.WriteTag(TagEventTree); err != nil {
		return err
	}
	return w.writeEventNode(t.Root())
}

func (w *Writer) writeEventNode(e *event.Event) error {
	if err := w.WriteInt64(int64(e.ID)); err != nil {
		return err
	}
	if err := w.WriteString(e.Name); err != nil {
		return err
	}
	if err := w.WriteFloat64(e.BranchLength); err != nil {
		return err
	}
	children := e.Children()
	if err := w.WriteInt64(int64(len(children))); err != nil {
		return err
	}
	for _, c := range children {
		if err := w.writeEventNode(c); err != nil {
			return err
		}
	}
	return nil
}

// DecodeEventTree reads an EVENT_TREE record written by EncodeEventTree.
func (r *Reader) DecodeEventTree() (*event.Tree, error) {
	if err := r.expectTag(TagEventTree); err != nil {
		return nil, err
	}
	root, err := r.readEventNode()
	if err != nil {
		return nil, err
	}
	return event.NewTree(root), nil
}

func (r *Reader) readEventNode() (*event.Event, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	bl, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	n, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	e := event.NewEvent(int(id), name, bl)
	for i := int64(0); i < n; i++ {
		child, err := r.readEventNode()
		if err != nil {
			return nil, err
		}
		e.AddChild(child)
	}
	return e, nil
}
