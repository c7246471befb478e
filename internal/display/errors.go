package display

import "errors"

var ErrUnknownOutput = errors.New("unknown output")
