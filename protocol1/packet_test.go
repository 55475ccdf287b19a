package protocol1

import (
	"bytes"
	"testing"
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
	want := []byte{0xFF, 0xFF, 0x01, 0x02, 0x01, 0xFB}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestSerializeBroadcast(t *testing.T) {
	got := Serialize(Broadcast(), Ping{})
	want := byte(0xFE)
	if got[2] != want {
		t.Fatalf("broadcast id byte: got %#02x, want %#02x", got[2], want)
	}
}

func TestNewServoIDRejectsBroadcast(t *testing.T) {
	if _, err := NewServoID(254); err == nil {
		t.Fatalf("expected error for id 254")
	}
}

func statusFrame(id byte, err byte, params []byte) []byte {
	length := byte(len(params) + 2)
	cksum := checksum(id, length, err, params)
	frame := []byte{0xFF, 0xFF, id, length, err}
	frame = append(frame, params...)
	frame = append(frame, cksum)
	return frame
}

func TestDeserializePong(t *testing.T) {
	frame := statusFrame(1, 0, []byte{0x1D, 0x00, 0x18})
	d := NewDeserializer().ExpectID(1)
	if _, err := d.Write(frame); err != nil {
		t.Fatalf("Write: %v", err)
	}
	params, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pong := decodePong(params)
	if pong.ModelNumber != 0x001D || pong.FirmwareVersion != 0x18 {
		t.Fatalf("got %+v", pong)
	}
}

func TestDeserializeChunked(t *testing.T) {
	frame := statusFrame(1, 0, []byte{0x1D, 0x00, 0x18})
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

func TestDeserializeChecksumMismatch(t *testing.T) {
	frame := statusFrame(1, 0, []byte{0x1D, 0x00, 0x18})
	frame[len(frame)-1] ^= 0xFF
	d := NewDeserializer()
	_, err := d.Write(frame)
	if fe, ok := err.(FormatError); !ok || fe.Kind != FormatChecksum {
		t.Fatalf("got %v, want FormatChecksum", err)
	}
}

func TestProcessingErrorBracketedRendering(t *testing.T) {
	pe := ProcessingError(bitOverloadError | bitRangeOverheating)
	got := pe.Error()
	want := "protocol1: processing error: [overload_error, range_error, overheating_error]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeProcessingErrorReservedBit(t *testing.T) {
	if _, err := decodeProcessingError(0x80); err == nil {
		t.Fatalf("expected format error for reserved bit 7")
	}
}
