package profile

// MaxDepth is the hard limit on the number of frames captured per sample.
// It bounds both the walk cost (at most MaxDepth-1 return-address reads) and
// the worst-case record size (1 + MaxDepth*8 bytes), and keeps the frame
// count encodable in the record's single count byte.
const MaxDepth = 64

// AddressingMode is the pointer width the profiled CPU executes with at the
// moment of sampling. A CPU may switch modes over its lifetime (early boot
// vs. steady state), so the mode is queried on every sample, never cached.
type AddressingMode uint8

const (
	// ModeNarrow addresses memory with 4-byte pointers.
	ModeNarrow AddressingMode = iota
	// ModeWide addresses memory with 8-byte pointers.
	ModeWide
)

// PointerWidth returns the pointer size in bytes for the mode.
func (m AddressingMode) PointerWidth() int {
	if m == ModeWide {
		return 8
	}

	return 4
}

func (m AddressingMode) String() string {
	if m == ModeWide {
		return "wide"
	}

	return "narrow"
}

// CPUID identifies one logical CPU of the instrumentation host.
type CPUID uint32

// RegisterID names a general-purpose register of the guest CPU.
type RegisterID uint8

const (
	// RegFramePointer is the register conventionally holding the base
	// address of the current stack frame (EBP/RBP on x86).
	RegFramePointer RegisterID = iota
)
