// Package dynamixel is the module root: it defines Error, the single error
// type every servo operation returns, unifying the three kinds of failure a
// transaction can report (spec'd as Communication, Format and Processing
// errors) behind one public surface.
package dynamixel

import (
	"dynamixel/protocol1"
	"dynamixel/protocol2"
	"dynamixel/transport"
)

// Error wraps exactly one concrete failure: a transport.CommunicationError,
// a protocol1/protocol2 FormatError, or a protocol1/protocol2
// ProcessingError. Exactly one field is non-nil.
type Error struct {
	Communication *transport.CommunicationError
	Format1       *protocol1.FormatError
	Format2       *protocol2.FormatError
	Processing1   *protocol1.ProcessingError
	Processing2   *protocol2.ProcessingError
}

func (e *Error) Error() string {
	switch {
	case e.Communication != nil:
		return e.Communication.Error()
	case e.Format1 != nil:
		return e.Format1.Error()
	case e.Format2 != nil:
		return e.Format2.Error()
	case e.Processing1 != nil:
		return e.Processing1.Error()
	case e.Processing2 != nil:
		return e.Processing2.Error()
	default:
		return "dynamixel: unknown error"
	}
}

// Unwrap exposes the concrete failure so callers can use errors.As against
// the specific kind they care about.
func (e *Error) Unwrap() error {
	switch {
	case e.Communication != nil:
		return *e.Communication
	case e.Format1 != nil:
		return *e.Format1
	case e.Format2 != nil:
		return *e.Format2
	case e.Processing1 != nil:
		return e.Processing1
	case e.Processing2 != nil:
		return e.Processing2
	default:
		return nil
	}
}

// Wrap adapts any error raised inside a servo transaction into the unified
// Error type. Errors of a recognized concrete kind are categorized exactly;
// anything else is treated as a generic Other communication failure. A nil
// err returns nil.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	e := &Error{}
	switch v := err.(type) {
	case transport.CommunicationError:
		e.Communication = &v
	case protocol1.FormatError:
		e.Format1 = &v
	case protocol2.FormatError:
		e.Format2 = &v
	case *protocol1.ProcessingError:
		e.Processing1 = v
	case *protocol2.ProcessingError:
		e.Processing2 = v
	default:
		other := transport.CommunicationError{Kind: transport.Other, Err: err}
		e.Communication = &other
	}
	return e
}
