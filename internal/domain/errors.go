package domain

import "errors"

var (
	ErrEmptyTable    = errors.New("blessing table is empty")
	ErrInvalidRecord = errors.New("invalid blessing record")
	ErrMissingAsset  = errors.New("missing asset")
)
