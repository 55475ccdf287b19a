// Package protocol2 implements the Dynamixel Protocol 2.0 wire codec: request
// serialization, response deserialization, byte stuffing and CRC-16
// verification, and the small set of register-parameterized instructions
// (Ping, Read, Write) needed by the servo transaction engine.
package protocol2

import "fmt"

// ServoID identifies a single device on the bus. Protocol 2 reserves 253 and
// 254 for broadcast, so a ServoID is valid in [0, 252].
type ServoID uint8

// MaxServoID is the highest unicast identifier Protocol 2 permits.
const MaxServoID = 252

// NewServoID validates id and returns a ServoID, or an error if id is
// reserved for broadcast or otherwise out of range.
func NewServoID(id uint8) (ServoID, error) {
	if id > MaxServoID {
		return 0, fmt.Errorf("protocol2: servo id %d exceeds maximum unicast id %d", id, MaxServoID)
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
