package profile

// Host is the capability surface the engine requires from the
// instrumentation host executing the guest. Implementations adapt one
// specific host build behind this boundary; the engine never assumes
// anything about the host's internal memory layout and refuses to install
// when a query cannot be answered.
type Host interface {
	// AddressingMode returns the pointer width the CPU is currently
	// executing with.
	AddressingMode(cpu CPUID) (AddressingMode, error)

	// ReadRegister returns the value of a general-purpose register,
	// zero-extended to 64 bits.
	ReadRegister(cpu CPUID, reg RegisterID) (uint64, error)

	// ReadMemory fills buf from guest memory starting at addr. Unmapped
	// or unreadable spans return an error; the walker treats any failure
	// as the end of the stack.
	ReadMemory(cpu CPUID, addr uint64, buf []byte) error
}

// InstructionFunc is invoked by the host once per executed guest
// instruction, with the address of the instruction being executed.
type InstructionFunc func(cpu CPUID, ip uint64)

// Instrumenter registers engine callbacks with the host. The shutdown
// callback fires exactly once, after the host guarantees no further
// instruction callbacks will arrive.
type Instrumenter interface {
	OnInstructionExec(fn InstructionFunc)
	OnShutdown(fn func())
}

// ReadMemoryFunc reads guest memory at addr into buf, bound to one CPU.
type ReadMemoryFunc func(addr uint64, buf []byte) error
