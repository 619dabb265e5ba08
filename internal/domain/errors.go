package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrEditConflict         = errors.New("edit conflict")
	ErrTheaterChainExists   = errors.New("theater chain already exists")
	ErrTheaterChainNotFound = errors.New("theater chain does not exist")
)

type errorKind int

const (
	kindNotFound errorKind = iota
	kindConflict
	kindValidation
)

// Error is a domain rule violation carrying a stable, caller-visible message.
// The kind tells the boundary layer how to surface it without matching on
// message text.
type Error struct {
	kind errorKind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func notFoundf(format string, args ...any) *Error {
	return &Error{kind: kindNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) *Error {
	return &Error{kind: kindConflict, msg: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...any) *Error {
	return &Error{kind: kindValidation, msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	if errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrTheaterChainNotFound) {
		return true
	}

	return isKind(err, kindNotFound)
}

func IsConflict(err error) bool {
	if errors.Is(err, ErrTheaterChainExists) {
		return true
	}

	return isKind(err, kindConflict)
}

func IsValidation(err error) bool {
	return isKind(err, kindValidation)
}

func isKind(err error, kind errorKind) bool {
	var domainErr *Error
	return errors.As(err, &domainErr) && domainErr.kind == kind
}
