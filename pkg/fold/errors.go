package fold

import (
	"github.com/pkg/errors"
)

var (
	ErrInputNil  = errors.New("no record stream input specified")
	ErrSymTabNil = errors.New("no symbol table specified")
)
