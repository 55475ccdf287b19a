package servo

import (
	"bytes"
	"errors"
	"testing"

	"dynamixel/protocol1"
	"dynamixel/protocol2"
	"dynamixel/register"
	"dynamixel/transport"
	"dynamixel/transport/transporttest"
)

func mustV2ID(t *testing.T, n uint8) protocol2.ServoID {
	t.Helper()
	id, err := protocol2.NewServoID(n)
	if err != nil {
		t.Fatalf("NewServoID: %v", err)
	}
	return id
}

func mustV1ID(t *testing.T, n uint8) protocol1.ServoID {
	t.Helper()
	id, err := protocol1.NewServoID(n)
	if err != nil {
		t.Fatalf("NewServoID: %v", err)
	}
	return id
}

func TestServoPingProtocolTwo(t *testing.T) {
	bus := transporttest.NewLoopback()
	bus.Respond = func(_ transport.BaudRate, written []byte) []byte {
		return []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x55, 0x00, 0x06, 0x04, 0x26, 0x65, 0x5D}
	}

	s := NewV2(mustV2ID(t, 1), 1000000)
	info, err := s.Ping(bus)
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if info.ModelNumber != 0x0406 || info.FirmwareVersion != 0x26 {
		t.Fatalf("got %+v", info)
	}
}

func TestServoReadWriteProtocolTwo(t *testing.T) {
	bus := transporttest.NewLoopback()
	goalPosition := register.U32(596, true, true)

	bus.Respond = func(_ transport.BaudRate, written []byte) []byte {
		// protocol2.Deserializer only accepts status frames, so the request
		// is checked by its Protocol 2 header and recipient id instead.
		if !bytes.HasPrefix(written, []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01}) {
			t.Fatalf("server-side parse: unexpected request % X", written)
		}
		switch protocol2.InstructionValue(written[7]) {
		case protocol2.InstrWrite:
			return protocol2.Serialize(protocol2.Unicast(mustV2ID(t, 1)), writeStatus{})
		case protocol2.InstrRead:
			return protocol2.Serialize(protocol2.Unicast(mustV2ID(t, 1)), readStatus{value: goalPosition.Bytes(12345)})
		}
		return nil
	}

	s := NewV2(mustV2ID(t, 1), 1000000)
	if err := Write(s, bus, goalPosition, 12345); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(s, bus, goalPosition)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 12345 {
		t.Fatalf("got %d, want 12345", got)
	}
}

// writeStatus and readStatus are tiny test-only Instruction implementations
// that let the mock bus build a status frame through protocol2.Serialize:
// the 0x55 status marker takes the instruction byte's place and the ERR byte
// is the first parameter; otherwise status and request frames share the same
// on-wire shape.
type writeStatus struct{}

func (writeStatus) Value() protocol2.InstructionValue { return 0x55 }
func (writeStatus) Parameters() []byte                { return []byte{0x00} }

type readStatus struct{ value []byte }

func (readStatus) Value() protocol2.InstructionValue { return 0x55 }
func (r readStatus) Parameters() []byte {
	return append([]byte{0x00}, r.value...)
}

func TestPingRejectsUnsupportedBaud(t *testing.T) {
	bus := transporttest.NewLoopback()
	bus.SetBaudRateErr = transport.CommunicationError{Kind: transport.UnsupportedBaud}

	s := NewV2(mustV2ID(t, 1), 1000000)
	_, err := s.Ping(bus)
	var ce transport.CommunicationError
	if !errors.As(err, &ce) || ce.Kind != transport.UnsupportedBaud {
		t.Fatalf("got %v, want UnsupportedBaud", err)
	}
}

func TestServoPingProtocolOne(t *testing.T) {
	bus := transporttest.NewLoopback()
	bus.Respond = func(_ transport.BaudRate, written []byte) []byte {
		return statusFrame1(1, 0, []byte{0x1D, 0x00, 0x18})
	}

	s := NewV1(mustV1ID(t, 1), 1000000)
	info, err := s.Ping(bus)
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if info.ModelNumber != 0x001D || info.FirmwareVersion != 0x18 {
		t.Fatalf("got %+v", info)
	}
}

func statusFrame1(id byte, errByte byte, params []byte) []byte {
	length := byte(len(params) + 2)
	sum := uint32(id) + uint32(length) + uint32(errByte)
	for _, b := range params {
		sum += uint32(b)
	}
	cksum := ^byte(sum)
	frame := []byte{0xFF, 0xFF, id, length, errByte}
	frame = append(frame, params...)
	frame = append(frame, cksum)
	return frame
}

func TestDiscoverCollectsMultipleResponders(t *testing.T) {
	bus := transporttest.NewLoopback()
	respondingBaud := transport.BaudRate(1000000)

	bus.Respond = func(baud transport.BaudRate, written []byte) []byte {
		if baud != respondingBaud {
			return nil
		}
		a := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x55, 0x00, 0x06, 0x04, 0x26, 0x65, 0x5D}
		b := protocol2.Serialize(protocol2.Unicast(mustV2ID(t, 2)), pongStatus{model: 0x0406, fw: 0x26})
		return append(a, b...)
	}

	found := Discover(bus, ProtocolTwo, nil)
	if len(found) != 2 {
		t.Fatalf("got %d servos, want 2", len(found))
	}
}

type pongStatus struct {
	model uint16
	fw    uint8
}

func (pongStatus) Value() protocol2.InstructionValue { return 0x55 }
func (p pongStatus) Parameters() []byte {
	return []byte{0x00, byte(p.model), byte(p.model >> 8), p.fw}
}
