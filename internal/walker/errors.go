package walker

import "errors"

// ErrNotDir is returned when the source root is not a directory.
var ErrNotDir = errors.New("not a directory")
