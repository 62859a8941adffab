package fold

import (
	"github.com/maxgio92/kprof/pkg/cmd/options"
)

type Options struct {
	profilePath string
	kernelPath  string
	outputPath  string
	status      bool

	*options.CommonOptions
}
