package profile

import (
	"github.com/pkg/errors"
)

var (
	ErrHostNil           = errors.New("no instrumentation host specified")
	ErrOutputNil         = errors.New("no output sink specified")
	ErrIntervalNegative  = errors.New("sample interval is negative")
	ErrMemUnreadable     = errors.New("guest memory is not readable")
	ErrFrameCount        = errors.New("frame count out of range")
	ErrUnsupportedTarget = errors.New("unsupported target addressing mode")
)
