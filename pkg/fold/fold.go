// Package fold aggregates a profile record stream into flamegraph folded
// stack lines.
package fold

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxgio92/kprof/pkg/record"
)

type Folder struct {
	stacks  map[string]uint64
	records uint64

	*FolderOptions
}

func NewFolder(opts ...FolderOption) *Folder {
	folder := &Folder{
		FolderOptions: &FolderOptions{},
		stacks:        make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(folder)
	}

	return folder
}

// Fold consumes the whole record stream, resolving each frame against the
// symbol table and counting identical stacks.
func (f *Folder) Fold(ctx context.Context) error {
	if f.input == nil {
		return ErrInputNil
	}
	if f.symtab == nil {
		return ErrSymTabNil
	}
	if f.logger == nil {
		logger := log.New(log.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		f.logger = &logger
	}

	group, ctx := errgroup.WithContext(ctx)
	samples := make(chan []uint64)

	reader := record.NewReader(f.input)
	group.Go(func() error {
		defer close(samples)
		for {
			frames, err := reader.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}

				return errors.Wrap(err, "error reading record")
			}

			select {
			case samples <- frames:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	group.Go(func() error {
		for frames := range samples {
			f.foldSample(frames)
			f.records++
			if f.progress != nil {
				f.progress(1 + len(frames)*8)
			}
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}
	f.logger.Debug().
		Uint64("records", f.records).
		Int("stacks", len(f.stacks)).
		Msg("folded record stream")

	return nil
}

// foldSample folds one captured stack, innermost frame first.
//
// Frames that resolve to no symbol split the sample: the walked chain may
// cross an interrupt boundary or leave the kernel image, and that filtering
// is deliberately not the walker's concern. Each run of resolvable frames
// is counted as its own substack.
func (f *Folder) foldSample(frames []uint64) {
	substack := make([]string, 0, len(frames))
	flush := func() {
		if len(substack) == 0 {
			return
		}
		// Folded lines read outermost caller first.
		slices.Reverse(substack)
		f.stacks[strings.Join(substack, ";")]++
		substack = substack[:0]
	}

	for _, addr := range frames {
		name, err := f.symtab.Resolve(addr)
		if err != nil {
			flush()
			continue
		}
		substack = append(substack, name)
	}
	flush()
}

// Stacks returns a copy of the folded stack counters keyed by the
// semicolon-joined stack, outermost frame first.
func (f *Folder) Stacks() map[string]uint64 {
	stacks := make(map[string]uint64, len(f.stacks))
	for k, v := range f.stacks {
		stacks[k] = v
	}

	return stacks
}

// Records returns the number of records consumed.
func (f *Folder) Records() uint64 {
	return f.records
}

// WriteFolded writes the folded stacks as "outer;...;inner count" lines,
// sorted for deterministic output.
func (f *Folder) WriteFolded(w io.Writer) error {
	keys := make([]string, 0, len(f.stacks))
	for k := range f.stacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s %d\n", k, f.stacks[k]); err != nil {
			return errors.Wrap(err, "error writing folded stack")
		}
	}

	return nil
}
