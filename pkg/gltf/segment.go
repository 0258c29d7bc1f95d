package gltf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// segment is one of the four contiguous byte regions of the packed
// body. Capacity is fixed by the sizer; the packer appends and the
// final length must equal the capacity exactly.
type segment struct {
	name     string
	buf      []byte
	capacity int
}

func newSegment(name string, capacity int) *segment {
	return &segment{
		name:     name,
		buf:      make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// pos returns the current write cursor.
func (s *segment) pos() int {
	return len(s.buf)
}

func (s *segment) putUint16(v uint16) {
	s.buf = binary.LittleEndian.AppendUint16(s.buf, v)
}

func (s *segment) putUint32(v uint32) {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, v)
}

func (s *segment) putFloat32(v float32) {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, math.Float32bits(v))
}

func (s *segment) putBytes(b []byte) {
	s.buf = append(s.buf, b...)
}

// checkFull verifies the sizing/packing invariant: the cursor must
// land exactly on the precomputed capacity. A mismatch means the two
// passes diverged and must never be tolerated.
func (s *segment) checkFull() error {
	if len(s.buf) != s.capacity {
		return fmt.Errorf("%w: %s segment wrote %d of %d bytes", ErrSegmentSizeMismatch, s.name, len(s.buf), s.capacity)
	}
	return nil
}
