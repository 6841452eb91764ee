package config

import (
	"errors"
)

var (
	// ErrEmptyTitle error if config title is empty.
	ErrEmptyTitle = errors.New("config title can not be empty")

	// ErrUnknownDumpFormat error if DumpConfig is asked for a format other than json or yaml.
	ErrUnknownDumpFormat = errors.New("unknown config dump format")
)
