package storage

import "errors"

var (
	// ErrNotFound reports an absent entry or binding.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntry reports a message that is already tracked.
	ErrDuplicateEntry = errors.New("message already tracked")
	// ErrAlreadyBound reports a role that already has a button on the message.
	ErrAlreadyBound = errors.New("role already bound")
)
