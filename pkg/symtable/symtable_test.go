package symtable_test

import (
	"debug/elf"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maxgio92/kprof/pkg/symtable"
)

func newTestTab() *symtable.ELFSymTab {
	tab := symtable.NewELFSymTab()
	tab.LoadSymbols([]elf.Symbol{
		{Name: "irq_handler", Value: 0x3000, Size: 0x100},
		{Name: "kernel_main", Value: 0x1000, Size: 0x200},
		{Name: "sched_yield", Value: 0x5000, Size: 0x80},
	})

	return tab
}

func TestResolveWithinRange(t *testing.T) {
	tab := newTestTab()

	name, err := tab.Resolve(0x1000)
	require.NoError(t, err)
	require.Equal(t, "kernel_main", name)

	name, err = tab.Resolve(0x30ff)
	require.NoError(t, err)
	require.Equal(t, "irq_handler", name)
}

func TestResolveRangeEndIsExclusive(t *testing.T) {
	tab := newTestTab()

	_, err := tab.Resolve(0x1200)
	require.Error(t, err)
	require.ErrorIs(t, err, symtable.ErrSymNotFound)
}

func TestResolveBelowAllSymbols(t *testing.T) {
	tab := newTestTab()

	_, err := tab.Resolve(0xfff)
	require.Error(t, err)
	require.ErrorIs(t, err, symtable.ErrSymNotFound)
}

func TestResolveEmptyTable(t *testing.T) {
	_, err := symtable.NewELFSymTab().Resolve(0x1000)
	require.Error(t, err)
	require.ErrorIs(t, err, symtable.ErrSymTableEmpty)
}

func TestResolvePrefersSizedSymbolAtSameAddress(t *testing.T) {
	tab := symtable.NewELFSymTab()
	tab.LoadSymbols([]elf.Symbol{
		{Name: "marker", Value: 0x1000, Size: 0},
		{Name: "kernel_main", Value: 0x1000, Size: 0x100},
	})

	name, err := tab.Resolve(0x1050)
	require.NoError(t, err)
	require.Equal(t, "kernel_main", name)
}

func TestLoadSymbolsDemanglesNames(t *testing.T) {
	tab := symtable.NewELFSymTab()
	tab.LoadSymbols([]elf.Symbol{
		{Name: "_Z3foov", Value: 0x1000, Size: 0x10},
	})

	name, err := tab.Resolve(0x1000)
	require.NoError(t, err)
	require.Equal(t, "foo()", name)
}

func TestLoadMissingFile(t *testing.T) {
	err := symtable.NewELFSymTab().Load("nonexistent-kernel-image")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
