// Package record reads the binary sample stream produced by the profiling
// engine: count-prefixed records of 64-bit native-order frame addresses,
// with no further framing.
package record

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/maxgio92/kprof/pkg/profile"
)

// Reader iterates over the records of a profile stream. The stream has no
// framing beyond the per-record count byte, so a malformed count is
// unrecoverable corruption rather than a skippable record.
type Reader struct {
	br *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the frames of the next record, the sampled instruction
// pointer first and return addresses innermost to outermost. It returns
// io.EOF at a clean end of stream.
func (r *Reader) Next() ([]uint64, error) {
	count, err := r.br.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, errors.Wrap(err, "error reading record header")
	}
	if count < 1 || int(count) > profile.MaxDepth {
		return nil, errors.Wrapf(ErrFrameCount, "count %d", count)
	}

	buf := make([]byte, int(count)*8)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.Wrapf(ErrTruncated, "%d frames expected", count)
		}

		return nil, errors.Wrap(err, "error reading record frames")
	}

	frames := make([]uint64, count)
	for i := range frames {
		frames[i] = binary.NativeEndian.Uint64(buf[i*8:])
	}

	return frames, nil
}
