package config

import "errors"

var (
	ErrConfigFileParse  = errors.New("failed to parse config file")
	ErrSourceDirEmpty   = errors.New("source_dir cannot be empty")
	ErrInvalidExtension = errors.New("extension must start with '.'")
)
