package register

import "testing"

func TestBoolRoundTrip(t *testing.T) {
	r := Bool(24, true, true)
	for _, v := range []bool{true, false} {
		raw := r.Encode(v)
		if got := r.Decode(raw); got != v {
			t.Fatalf("Bool round trip: got %v, want %v", got, v)
		}
	}
}

func TestU16RoundTrip(t *testing.T) {
	r := U16(30, true, true)
	raw := r.Encode(0xABCD)
	if raw != ([4]byte{0xCD, 0xAB, 0, 0}) {
		t.Fatalf("U16 encode: got %v", raw)
	}
	if got := r.Decode(raw); got != 0xABCD {
		t.Fatalf("U16 decode: got %#x", got)
	}
}

func TestI16RoundTrip(t *testing.T) {
	r := I16(604, true, true)
	raw := r.Encode(-100)
	if got := r.Decode(raw); got != -100 {
		t.Fatalf("I16 round trip: got %d", got)
	}
}

func TestU32Encode(t *testing.T) {
	r := U32(596, true, true)
	raw := r.Encode(0x00FDFFFF)
	want := [4]byte{0xFF, 0xFF, 0xFD, 0x00}
	if raw != want {
		t.Fatalf("U32 encode: got %v, want %v", raw, want)
	}
	if got := r.Decode(raw); got != 0x00FDFFFF {
		t.Fatalf("U32 decode: got %#x", got)
	}
}

func TestI32RoundTrip(t *testing.T) {
	r := I32(615, true, false)
	raw := r.Encode(-70000)
	if got := r.Decode(raw); got != -70000 {
		t.Fatalf("I32 round trip: got %d", got)
	}
}

func TestBytesTruncatesToSize(t *testing.T) {
	r := U16(30, true, true)
	b := r.Bytes(0x1234)
	if len(b) != 2 {
		t.Fatalf("Bytes length: got %d, want 2", len(b))
	}
	if b[0] != 0x34 || b[1] != 0x12 {
		t.Fatalf("Bytes content: got %v", b)
	}
}
