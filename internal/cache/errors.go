package cache

import "errors"

var (
	// ErrInvalidArgument is returned for an empty key or a non-positive
	// duration. It is always returned before the store is contacted.
	ErrInvalidArgument = errors.New("cache: invalid argument")

	// ErrNoRecordToUpdate is returned by Update when the key has no live entry.
	ErrNoRecordToUpdate = errors.New("cache: no record to update")

	// ErrStoreClosed is returned by local stores after Close.
	ErrStoreClosed = errors.New("cache: store closed")
)
