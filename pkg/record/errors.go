package record

import (
	"github.com/pkg/errors"
)

var (
	ErrFrameCount = errors.New("record frame count out of range")
	ErrTruncated  = errors.New("record stream truncated")
)
