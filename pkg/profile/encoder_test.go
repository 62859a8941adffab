package profile_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/maxgio92/kprof/pkg/profile"
)

func TestEncodeRecordLayout(t *testing.T) {
	var buf bytes.Buffer
	enc := profile.NewEncoder(&buf)

	frames := []uint64{0x1000, 0x3000, 0x5000}
	n, err := enc.Encode(frames)
	require.NoError(t, err)
	require.Equal(t, 1+len(frames)*8, n)
	require.Equal(t, n, buf.Len())

	out := buf.Bytes()
	require.Equal(t, byte(3), out[0])
	for i, want := range frames {
		require.Equal(t, want, binary.NativeEndian.Uint64(out[1+i*8:]))
	}
}

func TestEncodeAppendsRecords(t *testing.T) {
	var buf bytes.Buffer
	enc := profile.NewEncoder(&buf)

	_, err := enc.Encode([]uint64{0x1000})
	require.NoError(t, err)
	_, err = enc.Encode([]uint64{0x2000, 0x3000})
	require.NoError(t, err)

	out := buf.Bytes()
	require.Equal(t, byte(1), out[0])
	require.Equal(t, byte(2), out[9])
	require.Equal(t, 1+8+1+16, buf.Len())
}

func TestEncodeRejectsEmptySample(t *testing.T) {
	enc := profile.NewEncoder(&bytes.Buffer{})

	_, err := enc.Encode(nil)
	require.Error(t, err)
	require.ErrorIs(t, err, profile.ErrFrameCount)
}

func TestEncodeRejectsOverdeepSample(t *testing.T) {
	enc := profile.NewEncoder(&bytes.Buffer{})

	_, err := enc.Encode(make([]uint64, profile.MaxDepth+1))
	require.Error(t, err)
	require.ErrorIs(t, err, profile.ErrFrameCount)
}

type failingWriter struct {
	err error
}

func (w *failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestEncodeWrapsWriteError(t *testing.T) {
	sinkErr := errors.New("sink is gone")
	enc := profile.NewEncoder(&failingWriter{err: sinkErr})

	_, err := enc.Encode([]uint64{0x1000})
	require.Error(t, err)
	require.ErrorIs(t, err, sinkErr)
}
