package user

import "errors"

// Sentinels shared by both store backends so callers never need to know
// which one is active.
var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)
