package fold

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxgio92/kprof/internal/output"
	"github.com/maxgio92/kprof/internal/settings"
	"github.com/maxgio92/kprof/pkg/cmd/options"
	"github.com/maxgio92/kprof/pkg/fold"
	"github.com/maxgio92/kprof/pkg/symtable"
)

const CmdName = "fold"

func NewCommand(opts *options.CommonOptions) *cobra.Command {
	o := new(Options)
	o.CommonOptions = opts

	cmd := &cobra.Command{
		Use:   CmdName,
		Short: "Fold a recorded profile into flamegraph folded stacks",
		Long: fmt.Sprintf(`
%s reads the samples recorded from a guest kernel execution, resolves the
frame addresses against the kernel ELF symbol table and writes one folded
stack per line, ready for flamegraph tooling.
`, CmdName),
		DisableAutoGenTag: true,
		RunE:              o.Run,
	}

	cmd.Flags().StringVarP(&o.profilePath, "profile", "p", settings.DefaultProfileFile, "Path to the recorded profile file")
	cmd.Flags().StringVarP(&o.kernelPath, "kernel", "k", "", "Path to the profiled kernel ELF image")
	cmd.Flags().StringVarP(&o.outputPath, "output", "o", settings.DefaultFoldedFile, "Path of the folded stacks output file")
	cmd.Flags().BoolVar(&o.status, "status", true, "Periodically print folding progress")

	cmd.MarkFlagRequired("kernel")

	return cmd
}

func (o *Options) Run(_ *cobra.Command, _ []string) error {
	logLevel, err := log.ParseLevel(o.LogLevel)
	if err != nil {
		o.Logger.Fatal().Err(err).Msg("invalid log level")
	}
	o.Logger = o.Logger.Level(logLevel)

	symtab := symtable.NewELFSymTab()
	if err := symtab.Load(o.kernelPath); err != nil {
		return errors.Wrapf(err, "failed to load kernel symbols from %s", o.kernelPath)
	}

	profileFile, err := os.Open(o.profilePath)
	if err != nil {
		return errors.Wrap(err, "failed to open profile file")
	}
	defer profileFile.Close()

	info, err := profileFile.Stat()
	if err != nil {
		return errors.Wrap(err, "failed to stat profile file")
	}

	var consumed, records atomic.Uint64
	folder := fold.NewFolder(
		fold.WithFolderInput(profileFile),
		fold.WithFolderSymTab(symtab),
		fold.WithFolderLogger(&o.Logger),
		fold.WithFolderProgress(func(bytes int) {
			consumed.Add(uint64(bytes))
			records.Add(1)
		}),
	)

	statusCtx, stopStatus := context.WithCancel(o.Ctx)
	defer stopStatus()
	if o.status {
		go output.StatusBar(statusCtx, time.Second, func() {
			percent := 0
			if size := info.Size(); size > 0 {
				percent = int(consumed.Load() * 100 / uint64(size))
			}
			fmt.Print(output.PrettyFoldStatus(percent, records.Load()))
		})
	}

	err = folder.Fold(o.Ctx)
	stopStatus()
	if o.status {
		fmt.Println()
	}
	if err != nil {
		return errors.Wrap(err, "failed to fold profile")
	}

	outFile, err := os.Create(o.outputPath)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer outFile.Close()

	if err := folder.WriteFolded(outFile); err != nil {
		return errors.Wrap(err, "failed to write folded stacks")
	}
	o.Logger.Info().
		Uint64("records", folder.Records()).
		Str("output", o.outputPath).
		Msg("folded stacks written")

	return nil
}
