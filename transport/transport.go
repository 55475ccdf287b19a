// Package transport defines the byte-level contract the servo transaction
// engine needs from the physical bus: setting a baud rate, flushing stale
// bytes, and blocking reads/writes with a caller-visible timeout. It owns no
// concrete implementation; transporttest and transport/serialport provide
// those.
package transport

import "fmt"

// BaudRate is a bus speed, in bits per second. It is an open enumeration
// rather than a closed Go type: Dynamixel firmware revisions have added
// rates over time, and a caller targeting unusual hardware should still be
// able to construct one.
type BaudRate uint32

// Baud rates the discovery sweep tries, in the order the original control
// table lists them (lowest device-default rates first).
var StandardBaudRates = []BaudRate{
	9600,
	19200,
	57600,
	115200,
	200000,
	250000,
	400000,
	500000,
	1000000,
	2000000,
	3000000,
	4000000,
	4500000,
	10500000,
}

// ByteInterface is the minimal contract a physical or simulated bus must
// satisfy. Read and Write block until they complete, fail, or (for Read)
// time out; there is no cancellation path beyond that read timeout.
type ByteInterface interface {
	// SetBaudRate reconfigures the interface's bus speed. It returns
	// CommunicationError{Kind: UnsupportedBaud} if the underlying hardware
	// cannot run at rate.
	SetBaudRate(rate BaudRate) error
	// Flush discards any bytes already buffered for reading, so a stale
	// reply from a previous, abandoned transaction cannot be mistaken for
	// the next one's response.
	Flush() error
	// Read fills buf completely or returns an error. Implementations must
	// apply a read timeout internally; Read never blocks forever.
	Read(buf []byte) error
	// Write sends buf in its entirety or returns an error.
	Write(buf []byte) error
}

// CommunicationKind distinguishes the ways the byte interface itself can
// fail, as opposed to the device disagreeing about frame format or
// reporting a processing error.
type CommunicationKind uint8

const (
	// TimedOut means a Read did not complete within the interface's
	// configured timeout.
	TimedOut CommunicationKind = iota
	// UnsupportedBaud means SetBaudRate was asked for a rate the hardware
	// cannot run at.
	UnsupportedBaud
	// Other covers any other transport failure (disconnected port, OS
	// error, and so on).
	Other
)

// CommunicationError reports a failure of the byte interface itself.
type CommunicationError struct {
	Kind CommunicationKind
	Err  error
}

func (e CommunicationError) Error() string {
	switch e.Kind {
	case TimedOut:
		return "transport: read timed out"
	case UnsupportedBaud:
		return fmt.Sprintf("transport: unsupported baud rate: %v", e.Err)
	default:
		return fmt.Sprintf("transport: %v", e.Err)
	}
}

func (e CommunicationError) Unwrap() error { return e.Err }
