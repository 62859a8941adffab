package profile

import (
	"io"
	"time"

	log "github.com/rs/zerolog"
)

type ProfilerOptions struct {
	host     Host
	output   io.Writer
	interval time.Duration
	cpu      CPUID
	now      func() Timestamp

	logger *log.Logger
}

type ProfilerOption func(*Profiler)

func WithProfilerHost(host Host) ProfilerOption {
	return func(p *Profiler) {
		p.host = host
	}
}

// WithProfilerOutput sets the sink the sample records are written to. The
// profiler owns the sink exclusively for its whole lifetime and closes it on
// shutdown if it is an io.Closer.
func WithProfilerOutput(w io.Writer) ProfilerOption {
	return func(p *Profiler) {
		p.output = w
	}
}

// WithProfilerInterval sets the delay between samples. A zero interval
// samples on every instruction.
func WithProfilerInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.interval = interval
	}
}

// WithProfilerCPU sets the logical CPU whose addressing mode is probed at
// Init to validate the target.
func WithProfilerCPU(cpu CPUID) ProfilerOption {
	return func(p *Profiler) {
		p.cpu = cpu
	}
}

func WithProfilerLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// WithProfilerTimeSource overrides the wall-clock source consulted on every
// instruction callback. Meant for tests.
func WithProfilerTimeSource(now func() Timestamp) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}
