// internal/puzzle/errors.go
//
// Typed validation errors returned by NewCustom. Callers can match these
// with errors.Is to report which invariant a custom puzzle violated.

package puzzle

import "errors"

var (
	// ErrWrongLetterCount means the letter set was not exactly seven A-Z letters.
	ErrWrongLetterCount = errors.New("puzzle: need exactly 7 letters")

	// ErrDuplicateLetters means the letter set repeated a letter (case-insensitive).
	ErrDuplicateLetters = errors.New("puzzle: letters must be distinct")

	// ErrCenterNotInLetters means the center letter is not part of the letter set.
	ErrCenterNotInLetters = errors.New("puzzle: center letter must be one of the 7 letters")
)
