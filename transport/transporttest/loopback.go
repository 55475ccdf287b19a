// Package transporttest provides an in-memory transport.ByteInterface for
// exercising the codec and servo packages without real hardware: a
// hand-rolled, mutex-guarded scriptable buffer rather than a mocking
// framework.
package transporttest

import (
	"bytes"
	"errors"
	"sync"

	"dynamixel/transport"
)

// Loopback is a scriptable, thread-safe transport.ByteInterface. Each Write
// call is handed to Respond, if set, and whatever it returns is queued for
// the next Read calls; this lets a test simulate "servo answers this
// specific request" without a real device.
type Loopback struct {
	mu       sync.Mutex
	baud     transport.BaudRate
	pending  bytes.Buffer
	written  bytes.Buffer
	readErr  error
	writeErr error

	// SetBaudRateErr, if set, is returned by every subsequent SetBaudRate
	// call instead of actually changing the recorded rate. Lets a test
	// simulate hardware rejecting a rate.
	SetBaudRateErr error

	// Respond, if set, is invoked after every Write with the bytes just
	// written and the interface's current baud rate. Its return value is
	// appended to the read buffer. Returning nil simulates silence (the
	// request went unanswered at this baud, as discovery expects for
	// every rate but the one a servo is actually listening on).
	Respond func(baud transport.BaudRate, written []byte) []byte
}

// NewLoopback returns a Loopback with no baud rate set and no scripted
// response.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// SetBaudRate implements transport.ByteInterface.
func (l *Loopback) SetBaudRate(rate transport.BaudRate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.SetBaudRateErr != nil {
		return l.SetBaudRateErr
	}
	l.baud = rate
	return nil
}

// BaudRate returns the rate most recently passed to SetBaudRate.
func (l *Loopback) BaudRate() transport.BaudRate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.baud
}

// Flush implements transport.ByteInterface, discarding any queued response
// bytes a test has not yet consumed.
func (l *Loopback) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending.Reset()
	return nil
}

// Write implements transport.ByteInterface.
func (l *Loopback) Write(buf []byte) error {
	l.mu.Lock()
	if l.writeErr != nil {
		err := l.writeErr
		l.mu.Unlock()
		return err
	}
	l.written.Write(buf)
	respond := l.Respond
	baud := l.baud
	l.mu.Unlock()

	if respond == nil {
		return nil
	}
	reply := respond(baud, append([]byte(nil), buf...))
	if reply == nil {
		return nil
	}
	l.mu.Lock()
	l.pending.Write(reply)
	l.mu.Unlock()
	return nil
}

// Read implements transport.ByteInterface, returning
// transport.CommunicationError{Kind: transport.TimedOut} if fewer than
// len(buf) bytes are queued, mirroring a real port's read timeout.
func (l *Loopback) Read(buf []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readErr != nil {
		return l.readErr
	}
	if l.pending.Len() < len(buf) {
		return transport.CommunicationError{Kind: transport.TimedOut, Err: errors.New("transporttest: not enough queued bytes")}
	}
	_, err := l.pending.Read(buf)
	return err
}

// Written returns every byte ever passed to Write, in order.
func (l *Loopback) Written() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]byte(nil), l.written.Bytes()...)
}

// QueueResponse appends data directly to the read buffer, bypassing Respond.
// Useful for simple request/response tests that don't need per-baud logic.
func (l *Loopback) QueueResponse(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending.Write(data)
}

// SetReadError makes every subsequent Read fail with err.
func (l *Loopback) SetReadError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readErr = err
}

// SetWriteError makes every subsequent Write fail with err.
func (l *Loopback) SetWriteError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeErr = err
}
