// Package cryptanalysis breaks Vigenère-style ciphers from the ciphertext
// alone. Candidate key lengths are ranked by index of coincidence and each
// column's Caesar shift is recovered by matching letter frequencies against
// a reference table.
package cryptanalysis

import "errors"

var (
	// ErrInvalidArgument marks inputs the analyzer cannot work with.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoSignal is returned when no candidate length produced a non-zero
	// coincidence score, for example when the text has no letters.
	ErrNoSignal = errors.New("no coincidence signal")
)
