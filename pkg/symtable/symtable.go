package symtable

import (
	"debug/elf"
	"sort"

	"github.com/ianlancetaylor/demangle"
	"github.com/pkg/errors"
)

var (
	ErrSymNotFound   = errors.New("symbol not found")
	ErrSymTableEmpty = errors.New("symtable is empty")
)

// Symbol is one named address range of the profiled binary.
type Symbol struct {
	Name string
	Addr uint64
	Size uint64
}

// ELFSymTab is an abstraction around executable file symbol tables, for ELF
// files. Symbols are kept sorted by address so lookups binary-search the
// containing range.
type ELFSymTab struct {
	syms []Symbol
}

func NewELFSymTab() *ELFSymTab {
	return new(ELFSymTab)
}

// Load reads the symbol table of the ELF file at pathname. Loading is
// skipped if a table has already been loaded.
func (e *ELFSymTab) Load(pathname string) error {
	if len(e.syms) > 0 {
		return nil
	}

	file, err := elf.Open(pathname)
	if err != nil {
		return errors.Wrap(err, "error opening ELF file")
	}
	defer file.Close()

	syms, err := file.Symbols()
	if err != nil {
		return errors.Wrap(err, "error reading ELF symtable section")
	}
	e.LoadSymbols(syms)

	return nil
}

// LoadSymbols fills the table from an already-parsed symbol list. Mangled
// names are demangled when possible, otherwise kept as-is.
func (e *ELFSymTab) LoadSymbols(syms []elf.Symbol) {
	e.syms = make([]Symbol, 0, len(syms))
	for _, s := range syms {
		e.syms = append(e.syms, Symbol{
			Name: demangle.Filter(s.Name),
			Addr: s.Value,
			Size: s.Size,
		})
	}
	sort.Slice(e.syms, func(i, j int) bool {
		if e.syms[i].Addr != e.syms[j].Addr {
			return e.syms[i].Addr < e.syms[j].Addr
		}

		return e.syms[i].Size < e.syms[j].Size
	})
}

// Resolve returns the name of the symbol whose [addr, addr+size) range
// contains the instruction pointer address.
func (e *ELFSymTab) Resolve(ip uint64) (string, error) {
	if len(e.syms) == 0 {
		return "", ErrSymTableEmpty
	}

	// Index of the first symbol starting above ip; the candidate is the
	// one before it. Same-address duplicates sort by size, so the widest
	// range wins.
	i := sort.Search(len(e.syms), func(i int) bool {
		return e.syms[i].Addr > ip
	})
	if i == 0 {
		return "", ErrSymNotFound
	}

	if s := e.syms[i-1]; ip < s.Addr+s.Size {
		return s.Name, nil
	}

	return "", ErrSymNotFound
}
