package sdes

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidCharacter = errors.New("invalid character")
)

// InputError describes a rejected plaintext, ciphertext or key.  It matches
// ErrInvalidLength or ErrInvalidCharacter with errors.Is.
type InputError struct {
	Field string
	Err   error
	msg   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.msg)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func lengthError(field string, want, got int) error {
	return &InputError{
		Field: field,
		Err:   ErrInvalidLength,
		msg:   fmt.Sprintf("must be exactly %d bits, got %d", want, got),
	}
}

func characterError(field string, c byte, pos int) error {
	return &InputError{
		Field: field,
		Err:   ErrInvalidCharacter,
		msg:   fmt.Sprintf("%q at position %d, only '0' and '1' are allowed", c, pos),
	}
}
