package profile

import (
	"encoding/binary"
)

// Walk captures a call stack by following the chain of saved frame
// pointers. The entry instruction pointer is always frame 0; each further
// frame is the return address found one pointer above the saved frame
// pointer. The walk stops at maxDepth frames or at the first unreadable
// address, whichever comes first, and the frames collected so far are
// returned.
//
// The walker is purely mechanical: it applies no address-range policy (such
// as discarding frames outside kernel space), which belongs to the consumer
// of the emitted records. Frame-pointer walking needs no debug metadata in
// the sampling path, but it does require the profiled binary to preserve
// frame pointers, a build convention this component cannot verify.
func Walk(entryIP, framePtr uint64, mode AddressingMode, mem ReadMemoryFunc, maxDepth int) []uint64 {
	frames := make([]uint64, 1, maxDepth)
	frames[0] = entryIP

	width := uint64(mode.PointerWidth())
	var buf [8]byte
	slot := buf[:width]
	for len(frames) < maxDepth {
		// The return address sits one pointer above the saved frame
		// pointer.
		if err := mem(framePtr+width, slot); err != nil {
			break
		}
		frames = append(frames, decodePointer(slot, mode))

		if err := mem(framePtr, slot); err != nil {
			break
		}
		framePtr = decodePointer(slot, mode)
	}

	return frames
}

// decodePointer zero-extends a native-order pointer of the mode's width to
// 64 bits.
func decodePointer(b []byte, mode AddressingMode) uint64 {
	if mode == ModeWide {
		return binary.NativeEndian.Uint64(b)
	}

	return uint64(binary.NativeEndian.Uint32(b))
}
