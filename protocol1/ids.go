// Package protocol1 implements the Dynamixel Protocol 1.0 wire codec: the
// checksum-framed request/response layout that predates Protocol 2's CRC and
// byte stuffing, plus the register-parameterized Ping/Read/Write
// instructions the servo transaction engine needs.
package protocol1

import "fmt"

// ServoID identifies a single device on the bus. Protocol 1 reserves 254 for
// broadcast, so a ServoID is valid in [0, 253].
type ServoID uint8

// MaxServoID is the highest unicast identifier Protocol 1 permits.
const MaxServoID = 253

// NewServoID validates id and returns a ServoID, or an error if id is
// reserved for broadcast or otherwise out of range.
func NewServoID(id uint8) (ServoID, error) {
	if id > MaxServoID {
		return 0, fmt.Errorf("protocol1: servo id %d exceeds maximum unicast id %d", id, MaxServoID)
	}
	return ServoID(id), nil
}

// broadcastByte is the on-wire PacketID value meaning "every device".
const broadcastByte = 0xFE

// PacketID is the recipient of a request: a single servo or every servo on
// the bus. Broadcast requests never receive a response.
type PacketID struct {
	servo     ServoID
	broadcast bool
}

// Unicast addresses a single servo.
func Unicast(id ServoID) PacketID {
	return PacketID{servo: id}
}

// Broadcast addresses every servo on the bus.
func Broadcast() PacketID {
	return PacketID{broadcast: true}
}

// IsBroadcast reports whether id addresses every servo.
func (id PacketID) IsBroadcast() bool {
	return id.broadcast
}

// Byte returns the on-wire encoding of id.
func (id PacketID) Byte() byte {
	if id.broadcast {
		return broadcastByte
	}
	return byte(id.servo)
}
