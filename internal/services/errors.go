package services

import "errors"

var (
	// ErrNotFound is returned when a requested singular resource does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned when caller input cannot be used
	ErrInvalidArgument = errors.New("invalid argument")
)
