package profile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/rs/zerolog"
)

// Profiler is one sampling engine instance bound to a single logical CPU
// stream. It owns the sampling gate, the output sink and the run counters,
// so independent instances can coexist (one per test, or one per CPU with a
// multiplexed sink). Driving one instance from concurrent CPU streams
// requires external synchronization.
type Profiler struct {
	clock *SampleClock
	enc   *Encoder
	stats Stats

	*ProfilerOptions
}

// Stats counts the outcomes of one profiling run.
type Stats struct {
	Samples     uint64
	Truncated   uint64
	WriteErrors uint64
	BytesOut    uint64
}

func NewProfiler(opts ...ProfilerOption) *Profiler {
	profiler := &Profiler{
		ProfilerOptions: &ProfilerOptions{},
	}
	for _, opt := range opts {
		opt(profiler)
	}

	return profiler
}

// Init validates the configuration and arms the sampling gate.
// Configuration errors are fatal: the engine refuses to install rather than
// silently mis-decode addresses later.
func (p *Profiler) Init() error {
	if p.host == nil {
		return ErrHostNil
	}
	if p.output == nil {
		return ErrOutputNil
	}
	if p.interval < 0 {
		return errors.Wrapf(ErrIntervalNegative, "%s", p.interval)
	}
	if p.logger == nil {
		logger := log.New(log.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		p.logger = &logger
	}
	if p.now == nil {
		p.now = Now
	}

	// Probe the host once so an unrecognized target fails loudly at
	// startup instead of misreading every sample.
	mode, err := p.host.AddressingMode(p.cpu)
	if err != nil {
		return errors.Wrap(ErrUnsupportedTarget, err.Error())
	}

	p.enc = NewEncoder(p.output)
	p.clock = NewSampleClock(p.interval, p.now())

	p.logger.Debug().
		Str("interval", p.interval.String()).
		Str("mode", mode.String()).
		Msg("profiler armed")

	return nil
}

// OnInstruction is the per-instruction sampling hook. The not-due path is a
// single gate check; the due path is bounded by MaxDepth memory reads, one
// register read and one write.
func (p *Profiler) OnInstruction(cpu CPUID, ip uint64) {
	now := p.now()
	if !p.clock.ShouldSample(now) {
		return
	}

	p.sample(cpu, ip)
	p.clock.Advance(now)
}

// sample captures, encodes and emits one stack. Failures never cross the
// sample boundary: sampling of subsequent instructions continues regardless.
func (p *Profiler) sample(cpu CPUID, ip uint64) {
	mode, err := p.host.AddressingMode(cpu)
	if err != nil {
		p.logger.Warn().Err(err).Uint32("cpu", uint32(cpu)).Msg("skipping sample: addressing mode unavailable")
		return
	}

	framePtr, err := p.host.ReadRegister(cpu, RegFramePointer)
	if err != nil {
		p.logger.Warn().Err(err).Uint32("cpu", uint32(cpu)).Msg("skipping sample: frame pointer unavailable")
		return
	}

	frames := Walk(ip, framePtr, mode, func(addr uint64, buf []byte) error {
		return p.host.ReadMemory(cpu, addr, buf)
	}, MaxDepth)
	if len(frames) < MaxDepth {
		p.stats.Truncated++
	}

	n, err := p.enc.Encode(frames)
	p.stats.BytesOut += uint64(n)
	if err != nil {
		// A dropped record is acceptable for a statistical profiler;
		// sampling goes on.
		p.stats.WriteErrors++
		p.logger.Warn().Err(err).Msg("error writing sample")
		return
	}
	p.stats.Samples++
}

// Attach wires the engine into the instrumentation host: the sampling hook
// on every executed instruction, and sink teardown once the host guarantees
// no further callbacks will arrive.
func (p *Profiler) Attach(instr Instrumenter) {
	instr.OnInstructionExec(p.OnInstruction)
	instr.OnShutdown(func() {
		if err := p.Close(); err != nil {
			p.logger.Err(err).Msg("error closing profiler")
		}
	})
}

// Stats returns the counters of the run so far.
func (p *Profiler) Stats() Stats {
	return p.stats
}

// Close releases the output sink. It must only be called after the last
// sample has been written.
func (p *Profiler) Close() error {
	stats := p.Stats()
	p.logger.Info().
		Uint64("samples", stats.Samples).
		Uint64("truncated", stats.Truncated).
		Uint64("write_errors", stats.WriteErrors).
		Uint64("bytes", stats.BytesOut).
		Msg("profiler stopped")

	if closer, ok := p.output.(io.Closer); ok {
		return errors.Wrap(closer.Close(), "error closing output sink")
	}

	return nil
}
