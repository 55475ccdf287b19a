package protocol2

import "dynamixel/register"

// Pong is the response to a Ping instruction.
type Pong struct {
	ModelNumber     uint16
	FirmwareVersion uint8
}

// pongParameters is the fixed parameter length of a Pong status frame.
const pongParameters = 3

func decodePong(params []byte) Pong {
	return Pong{
		ModelNumber:     uint16(params[0]) | uint16(params[1])<<8,
		FirmwareVersion: params[2],
	}
}

// DecodeReadStatus reconstructs the value a ReadStatus frame carries, using
// reg's width and codec to interpret the raw parameter bytes.
func DecodeReadStatus[T any](params []byte, reg register.Register[T]) T {
	var raw [4]byte
	copy(raw[:], params)
	return reg.Decode(raw)
}
