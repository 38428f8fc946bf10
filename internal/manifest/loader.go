package manifest

import "context"

//go:generate mockgen -source=loader.go -destination=mocks/loader.gen.go -package=mocks

// Loader reads the declared dependencies of the root package in dir.
type Loader interface {
	Name() string
	Load(ctx context.Context, dir string) (*Package, error)
}
