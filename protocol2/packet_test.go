package protocol2

import (
	"bytes"
	"testing"

	"dynamixel/register"
)

func id(t *testing.T, n uint8) ServoID {
	t.Helper()
	sid, err := NewServoID(n)
	if err != nil {
		t.Fatalf("NewServoID(%d): %v", n, err)
	}
	return sid
}

func TestSerializePingUnicast(t *testing.T) {
	got := Serialize(Unicast(id(t, 1)), Ping{})
	want := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x03, 0x00, 0x01, 0x19, 0x4E}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestSerializePingBroadcast(t *testing.T) {
	got := Serialize(Broadcast(), Ping{})
	want := []byte{0xFF, 0xFF, 0xFD, 0x00, 0xFE, 0x03, 0x00, 0x01, 0x31, 0x42}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestSerializeWriteNoStuffing(t *testing.T) {
	goalPosition := register.U32(596, true, true)
	got := Serialize(Unicast(id(t, 1)), WriteRegister(goalPosition, 0xABCD))
	want := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x09, 0x00, 0x03, 0x54, 0x02, 0xCD, 0xAB, 0x00, 0x00, 0x0D, 0xE5}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestSerializeWriteWithStuffing(t *testing.T) {
	goalPosition := register.U32(596, true, true)
	got := Serialize(Unicast(id(t, 1)), WriteRegister(goalPosition, 0x00FDFFFF))
	want := []byte{
		0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x0A, 0x00, 0x03,
		0x54, 0x02, 0xFF, 0xFF, 0xFD, 0xFD, 0x00, 0x21, 0x35,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestSerializeRead(t *testing.T) {
	presentPosition := register.U32(611, true, false)
	got := Serialize(Unicast(id(t, 1)), ReadRegister(presentPosition))
	want := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x02, 0x63, 0x02, 0x04, 0x00, 0x1B, 0xF9}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestDeserializePong(t *testing.T) {
	frame := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x55, 0x00, 0x06, 0x04, 0x26, 0x65, 0x5D}
	d := NewDeserializer().ExpectID(1)
	if _, err := d.Write(frame); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !d.Finished() {
		t.Fatalf("expected frame to be finished")
	}
	params, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pong := decodePong(params)
	if pong.ModelNumber != 0x0406 || pong.FirmwareVersion != 0x26 {
		t.Fatalf("got %+v", pong)
	}
}

func TestDeserializeChunked(t *testing.T) {
	frame := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x55, 0x00, 0x06, 0x04, 0x26, 0x65, 0x5D}
	for chunk := 1; chunk <= len(frame); chunk++ {
		d := NewDeserializer()
		for i := 0; i < len(frame); i += chunk {
			end := i + chunk
			if end > len(frame) {
				end = len(frame)
			}
			if _, err := d.Write(frame[i:end]); err != nil {
				t.Fatalf("chunk size %d: Write: %v", chunk, err)
			}
		}
		if !d.Finished() {
			t.Fatalf("chunk size %d: expected finished", chunk)
		}
	}
}

func TestDeserializeRejectsRequestFrame(t *testing.T) {
	frame := Serialize(Unicast(id(t, 1)), WriteRegister(register.U32(596, true, true), 0x00FDFFFF))
	d := NewDeserializer()
	// Re-serialized request isn't a status frame (no 0x55 marker): confirm
	// that mismatch surfaces as FormatInstruction rather than silently
	// misparsing, proving the deserializer actually checks the marker.
	if _, err := d.Write(frame); err == nil {
		t.Fatalf("expected FormatInstruction error, got none")
	} else if fe, ok := err.(FormatError); !ok || fe.Kind != FormatInstruction {
		t.Fatalf("got %v, want FormatInstruction", err)
	}
}

func TestDeserializeCRCMismatch(t *testing.T) {
	frame := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x07, 0x00, 0x55, 0x00, 0x06, 0x04, 0x26, 0x65, 0x5E}
	d := NewDeserializer()
	_, err := d.Write(frame)
	if err == nil {
		t.Fatalf("expected CRC error")
	}
	if fe, ok := err.(FormatError); !ok || fe.Kind != FormatCRC {
		t.Fatalf("got %v, want FormatCRC", err)
	}
}

func TestDeserializeInvalidErrorCode(t *testing.T) {
	// ERR byte 0x08: low 7 bits name a code outside the defined 0x01..0x07
	// range, so this must surface as FormatInvalidError rather than being
	// decoded as a ProcessingError with an unrecognized code.
	frame := []byte{0xFF, 0xFF, 0xFD, 0x00, 0x01, 0x04, 0x00, 0x55, 0x08, 0x92, 0x8C}
	d := NewDeserializer()
	_, err := d.Write(frame)
	if err == nil {
		t.Fatalf("expected FormatInvalidError")
	}
	if fe, ok := err.(FormatError); !ok || fe.Kind != FormatInvalidError {
		t.Fatalf("got %v, want FormatInvalidError", err)
	}
}

func TestNewServoIDRejectsBroadcastRange(t *testing.T) {
	if _, err := NewServoID(253); err == nil {
		t.Fatalf("expected error for id 253")
	}
	if _, err := NewServoID(254); err == nil {
		t.Fatalf("expected error for id 254")
	}
}
