package fold

import (
	"io"

	log "github.com/rs/zerolog"

	"github.com/maxgio92/kprof/pkg/symtable"
)

type FolderOptions struct {
	input    io.Reader
	symtab   *symtable.ELFSymTab
	progress func(bytes int)

	logger *log.Logger
}

type FolderOption func(*Folder)

func WithFolderInput(r io.Reader) FolderOption {
	return func(f *Folder) {
		f.input = r
	}
}

func WithFolderSymTab(symtab *symtable.ELFSymTab) FolderOption {
	return func(f *Folder) {
		f.symtab = symtab
	}
}

// WithFolderProgress registers a callback invoked after every folded record
// with the number of input bytes it consumed.
func WithFolderProgress(progress func(bytes int)) FolderOption {
	return func(f *Folder) {
		f.progress = progress
	}
}

func WithFolderLogger(logger *log.Logger) FolderOption {
	return func(f *Folder) {
		f.logger = logger
	}
}
