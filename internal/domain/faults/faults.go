package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers and API responses.
type Kind string

const (
	ParseFailure     Kind = "ParseFailure"     //unreadable or corrupt document
	ConfigError      Kind = "ConfigError"      //invalid chunking or selector configuration
	StoreFailure     Kind = "StoreFailure"     //persistence layer unreachable or corrupted
	ModelUnavailable Kind = "ModelUnavailable" //embedding/chat runtime unreachable
	ValidationError  Kind = "ValidationError"  //bad user input
)

type Fault struct {
	Kind    Kind
	Message string
	wrapped error
}

func (f *Fault) Error() string {
	if f.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.wrapped)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.wrapped
}

// New builds a fault of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(format, args...), wrapped: err}
}

// KindOf extracts the kind from an error chain, empty when untyped.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether any error in the chain carries the kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
