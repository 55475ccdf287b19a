// Package serialport adapts go.bug.st/serial to transport.ByteInterface,
// giving cmd/dxlctl and integration tests a real half-duplex RS-485/TTL
// serial port. The codec and servo packages never import this package
// directly; they only see transport.ByteInterface.
package serialport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"

	"dynamixel/transport"
)

// Port wraps an open go.bug.st/serial port as a transport.ByteInterface.
type Port struct {
	port    serial.Port
	name    string
	timeout time.Duration
}

// defaultTimeout is the byte-to-byte read timeout applied when Open is not
// given one explicitly.
const defaultTimeout = 100 * time.Millisecond

// Open opens the named serial device at the given baud rate with 8 data
// bits, no parity and one stop bit, the configuration every Dynamixel servo
// expects.
func Open(name string, baud transport.BaudRate, timeout time.Duration) (*Port, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	mode := &serial.Mode{
		BaudRate: int(baud),
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, transport.CommunicationError{Kind: transport.Other, Err: fmt.Errorf("serialport: open %s: %w", name, err)}
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		p.Close()
		return nil, transport.CommunicationError{Kind: transport.Other, Err: fmt.Errorf("serialport: set read timeout: %w", err)}
	}
	return &Port{port: p, name: name, timeout: timeout}, nil
}

// SetBaudRate implements transport.ByteInterface.
func (p *Port) SetBaudRate(rate transport.BaudRate) error {
	mode := &serial.Mode{
		BaudRate: int(rate),
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	if err := p.port.SetMode(mode); err != nil {
		return transport.CommunicationError{Kind: transport.UnsupportedBaud, Err: err}
	}
	return nil
}

// Flush implements transport.ByteInterface by discarding any bytes already
// buffered by the OS driver, so a stale reply cannot leak into the next
// transaction.
func (p *Port) Flush() error {
	if err := p.port.ResetInputBuffer(); err != nil {
		return transport.CommunicationError{Kind: transport.Other, Err: err}
	}
	return nil
}

// Read implements transport.ByteInterface. It fills buf completely or
// returns transport.CommunicationError{Kind: transport.TimedOut} once the
// configured read timeout elapses with no further bytes arriving.
func (p *Port) Read(buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := p.port.Read(buf[total:])
		if err != nil {
			return transport.CommunicationError{Kind: transport.Other, Err: err}
		}
		if n == 0 {
			return transport.CommunicationError{Kind: transport.TimedOut, Err: errors.New("serialport: read timed out")}
		}
		total += n
	}
	return nil
}

// Write implements transport.ByteInterface.
func (p *Port) Write(buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := p.port.Write(buf[total:])
		if err != nil {
			return transport.CommunicationError{Kind: transport.Other, Err: err}
		}
		total += n
	}
	return nil
}

// Close releases the underlying OS handle.
func (p *Port) Close() error {
	return p.port.Close()
}
