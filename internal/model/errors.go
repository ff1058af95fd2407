package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced to the orchestrator.
type ErrorKind int

const (
	InvalidInput ErrorKind = iota + 1
	MissingSource
	MissingDestination
	RetriesExhausted
	Codec
	InputClosed
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case MissingSource:
		return "missing source directory"
	case MissingDestination:
		return "missing destination directory"
	case RetriesExhausted:
		return "retries exhausted"
	case Codec:
		return "image codec"
	case InputClosed:
		return "input closed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Fatal reports whether an error of this kind ends the program.
func (k ErrorKind) Fatal() bool {
	return k == RetriesExhausted || k == InputClosed
}

// Error is a classified failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

// NewError builds an Error with a plain message.
func NewError(kind ErrorKind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
