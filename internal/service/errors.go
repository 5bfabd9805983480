package service

import (
	"errors"
	"fmt"
)

var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrEmailTaken     = errors.New("email already in use")
	ErrBadCredentials = errors.New("bad credentials")
	ErrForbidden      = errors.New("not the owner")
	ErrBlankField     = errors.New("required field is blank")
)

// UnknownTagError names the offending input so the caller can report it.
// Resolving any unknown tag fails the whole operation; nothing is applied
// partially.
type UnknownTagError struct {
	Name string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag %q", e.Name)
}
