package manifest

import "errors"

var (
	// ErrNoRootPackage is returned when the manifest has no [package], e.g.
	// a virtual workspace manifest.
	ErrNoRootPackage = errors.New("no root package")

	ErrUnknownSource = errors.New("unknown metadata source")
)
