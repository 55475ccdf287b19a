// Package servo implements the per-servo transaction engine: one-shot,
// synchronous Ping/Read/Write operations over either wire protocol, plus
// baud-rate discovery. Every public function is blocking and
// single-threaded; there is no internal task queue or goroutine, and the
// only cancellation path is the byte interface's own read timeout.
package servo

import (
	"dynamixel"
	"dynamixel/protocol1"
	"dynamixel/protocol2"
	"dynamixel/register"
	"dynamixel/transport"
)

// Protocol selects which wire protocol a Servo handle speaks.
type Protocol uint8

const (
	ProtocolOne Protocol = 1
	ProtocolTwo Protocol = 2
)

// ServoInfo is the identity a servo reports in response to Ping.
type ServoInfo struct {
	ID              uint8
	ModelNumber     uint16
	FirmwareVersion uint8
}

// Servo is a handle to one device on the bus, bound to whichever protocol
// version it speaks and the baud rate it's configured for. It carries no
// transport of its own; every operation takes the transport.ByteInterface to
// use explicitly, so a single bus can serve many Servo handles, possibly at
// different baud rates, without any of them owning the connection.
type Servo struct {
	protocol Protocol
	baud     transport.BaudRate
	id1      protocol1.ServoID
	id2      protocol2.ServoID
}

// NewV1 builds a handle for a Protocol 1 device running at baud.
func NewV1(id protocol1.ServoID, baud transport.BaudRate) *Servo {
	return &Servo{protocol: ProtocolOne, baud: baud, id1: id}
}

// NewV2 builds a handle for a Protocol 2 device running at baud.
func NewV2(id protocol2.ServoID, baud transport.BaudRate) *Servo {
	return &Servo{protocol: ProtocolTwo, baud: baud, id2: id}
}

// Protocol reports which wire protocol s speaks.
func (s *Servo) Protocol() Protocol {
	return s.protocol
}

// BaudRate reports the rate s expects the bus to be configured at before an
// operation is attempted.
func (s *Servo) BaudRate() transport.BaudRate {
	return s.baud
}

// setBaud configures bus for s's baud rate, the first step of every
// operation below. A rate the hardware rejects surfaces as
// transport.CommunicationError{Kind: transport.UnsupportedBaud}.
func (s *Servo) setBaud(bus transport.ByteInterface) error {
	return bus.SetBaudRate(s.baud)
}

// frameDeserializer is satisfied by both protocol1.Deserializer and
// protocol2.Deserializer, letting readFrame drive either one without
// caring which protocol is in play.
type frameDeserializer interface {
	Write([]byte) (int, error)
	Finished() bool
}

// readFrame pulls single bytes from bus into d until a complete frame has
// been parsed or an error (including a transport read timeout) occurs. This
// is the only read strategy the engine uses: it never guesses a frame's
// total length up front, since that length is itself part of what's being
// parsed.
func readFrame(bus transport.ByteInterface, d frameDeserializer) error {
	buf := make([]byte, 1)
	for !d.Finished() {
		if err := bus.Read(buf); err != nil {
			return err
		}
		if _, err := d.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Ping requests the addressed servo's identity. It returns a *dynamixel.Error
// on any communication, format, or processing failure.
func (s *Servo) Ping(bus transport.ByteInterface) (ServoInfo, error) {
	if err := s.setBaud(bus); err != nil {
		return ServoInfo{}, dynamixel.Wrap(err)
	}
	if err := bus.Flush(); err != nil {
		return ServoInfo{}, dynamixel.Wrap(err)
	}

	switch s.protocol {
	case ProtocolOne:
		frame := protocol1.Serialize(protocol1.Unicast(s.id1), protocol1.Ping{})
		if err := bus.Write(frame); err != nil {
			return ServoInfo{}, dynamixel.Wrap(err)
		}
		d := protocol1.NewDeserializer().ExpectID(byte(s.id1))
		if err := readFrame(bus, d); err != nil {
			return ServoInfo{}, dynamixel.Wrap(err)
		}
		if pe := d.ProcessingError(); pe != nil {
			return ServoInfo{}, dynamixel.Wrap(pe)
		}
		params, err := d.Build()
		if err != nil {
			return ServoInfo{}, dynamixel.Wrap(err)
		}
		return infoFromProtocol1(d.ID(), params), nil

	default:
		frame := protocol2.Serialize(protocol2.Unicast(s.id2), protocol2.Ping{})
		if err := bus.Write(frame); err != nil {
			return ServoInfo{}, dynamixel.Wrap(err)
		}
		d := protocol2.NewDeserializer().ExpectID(byte(s.id2))
		if err := readFrame(bus, d); err != nil {
			return ServoInfo{}, dynamixel.Wrap(err)
		}
		if pe := d.ProcessingError(); pe != nil {
			return ServoInfo{}, dynamixel.Wrap(pe)
		}
		params, err := d.Build()
		if err != nil {
			return ServoInfo{}, dynamixel.Wrap(err)
		}
		return infoFromProtocol2(d.ID(), params), nil
	}
}

func infoFromProtocol1(id byte, params []byte) ServoInfo {
	var raw [3]byte
	copy(raw[:], params)
	return ServoInfo{
		ID:              id,
		ModelNumber:     uint16(raw[0]) | uint16(raw[1])<<8,
		FirmwareVersion: raw[2],
	}
}

func infoFromProtocol2(id byte, params []byte) ServoInfo {
	var raw [3]byte
	copy(raw[:], params)
	return ServoInfo{
		ID:              id,
		ModelNumber:     uint16(raw[0]) | uint16(raw[1])<<8,
		FirmwareVersion: raw[2],
	}
}

// Read fetches reg's current value from s over bus.
func Read[T any](s *Servo, bus transport.ByteInterface, reg register.Register[T]) (T, error) {
	var zero T
	if err := s.setBaud(bus); err != nil {
		return zero, dynamixel.Wrap(err)
	}
	if err := bus.Flush(); err != nil {
		return zero, dynamixel.Wrap(err)
	}

	switch s.protocol {
	case ProtocolOne:
		frame := protocol1.Serialize(protocol1.Unicast(s.id1), protocol1.ReadRegister(reg))
		if err := bus.Write(frame); err != nil {
			return zero, dynamixel.Wrap(err)
		}
		d := protocol1.NewDeserializer().ExpectID(byte(s.id1))
		if err := readFrame(bus, d); err != nil {
			return zero, dynamixel.Wrap(err)
		}
		if pe := d.ProcessingError(); pe != nil {
			return zero, dynamixel.Wrap(pe)
		}
		params, err := d.Build()
		if err != nil {
			return zero, dynamixel.Wrap(err)
		}
		return protocol1.DecodeReadStatus(params, reg), nil

	default:
		frame := protocol2.Serialize(protocol2.Unicast(s.id2), protocol2.ReadRegister(reg))
		if err := bus.Write(frame); err != nil {
			return zero, dynamixel.Wrap(err)
		}
		d := protocol2.NewDeserializer().ExpectID(byte(s.id2))
		if err := readFrame(bus, d); err != nil {
			return zero, dynamixel.Wrap(err)
		}
		if pe := d.ProcessingError(); pe != nil {
			return zero, dynamixel.Wrap(pe)
		}
		params, err := d.Build()
		if err != nil {
			return zero, dynamixel.Wrap(err)
		}
		return protocol2.DecodeReadStatus(params, reg), nil
	}
}

// Write stores v into reg on s over bus. Broadcasting a write is not
// supported through this helper since there would be no response to confirm
// against; construct the protocol-specific Write instruction directly for
// that case.
func Write[T any](s *Servo, bus transport.ByteInterface, reg register.Register[T], v T) error {
	if err := s.setBaud(bus); err != nil {
		return dynamixel.Wrap(err)
	}
	if err := bus.Flush(); err != nil {
		return dynamixel.Wrap(err)
	}

	switch s.protocol {
	case ProtocolOne:
		frame := protocol1.Serialize(protocol1.Unicast(s.id1), protocol1.WriteRegister(reg, v))
		if err := bus.Write(frame); err != nil {
			return dynamixel.Wrap(err)
		}
		d := protocol1.NewDeserializer().ExpectID(byte(s.id1))
		if err := readFrame(bus, d); err != nil {
			return dynamixel.Wrap(err)
		}
		if pe := d.ProcessingError(); pe != nil {
			return dynamixel.Wrap(pe)
		}
		if _, err := d.Build(); err != nil {
			return dynamixel.Wrap(err)
		}
		return nil

	default:
		frame := protocol2.Serialize(protocol2.Unicast(s.id2), protocol2.WriteRegister(reg, v))
		if err := bus.Write(frame); err != nil {
			return dynamixel.Wrap(err)
		}
		d := protocol2.NewDeserializer().ExpectID(byte(s.id2))
		if err := readFrame(bus, d); err != nil {
			return dynamixel.Wrap(err)
		}
		if pe := d.ProcessingError(); pe != nil {
			return dynamixel.Wrap(pe)
		}
		if _, err := d.Build(); err != nil {
			return dynamixel.Wrap(err)
		}
		return nil
	}
}
