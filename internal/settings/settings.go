package settings

const (
	CmdName = "kprof"

	// DefaultProfileFile matches the default output name the recording
	// engine uses inside the emulator.
	DefaultProfileFile = "qemu-profile"

	// DefaultFoldedFile is where folded stacks are written, ready to be
	// fed to flamegraph tooling.
	DefaultFoldedFile = "cpu.folded"
)
