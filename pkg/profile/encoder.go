package profile

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Encoder serializes captured samples into the profile record stream: one
// count byte followed by count 64-bit addresses in native byte order, the
// sampled instruction pointer first. Records carry no other framing, so
// consumers read until end of file.
type Encoder struct {
	w io.Writer

	// Scratch buffer sized for the largest possible record, reused across
	// samples to keep the sampling path allocation-free.
	buf [1 + MaxDepth*8]byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one sample record and returns the number of bytes written.
// frames must hold between 1 and MaxDepth addresses.
func (e *Encoder) Encode(frames []uint64) (int, error) {
	if len(frames) < 1 || len(frames) > MaxDepth {
		return 0, errors.Wrapf(ErrFrameCount, "%d frames", len(frames))
	}

	e.buf[0] = byte(len(frames))
	for i, addr := range frames {
		binary.NativeEndian.PutUint64(e.buf[1+i*8:], addr)
	}

	n, err := e.w.Write(e.buf[:1+len(frames)*8])
	if err != nil {
		return n, errors.Wrap(err, "error writing sample record")
	}

	return n, nil
}
