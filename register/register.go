// Package register implements the typed, fixed-width control-table register
// model shared by protocol1 and protocol2: every value on a Dynamixel control
// table is a little-endian field of 1, 2 or 4 bytes, zero-extended to a
// 4-byte wire slot, addressed by a fixed table offset.
package register

// Width is the on-wire byte width of a register value.
type Width uint8

// Valid register widths. Dynamixel control tables never use anything else.
const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
)

// Descriptor locates a register in a servo's control table and records the
// capabilities the device's control table grants it.
type Descriptor struct {
	Address  uint16
	Size     Width
	Readable bool
	Writable bool
}

// Register is a typed accessor for one control-table entry. T is the Go type
// callers read and write; Encode/Decode carry the little-endian, zero-extended
// wire representation.
type Register[T any] struct {
	Descriptor
	encode func(T) [4]byte
	decode func([4]byte) T
}

// Encode returns the 4-byte wire representation of v, zero-extended beyond
// the register's Size.
func (r Register[T]) Encode(v T) [4]byte {
	return r.encode(v)
}

// Decode reconstructs a value of type T from a 4-byte wire slot. Only the
// low Size bytes of raw are meaningful; callers must zero the rest.
func (r Register[T]) Decode(raw [4]byte) T {
	return r.decode(raw)
}

// Bytes returns the Size on-wire bytes for v, least-significant first.
func (r Register[T]) Bytes(v T) []byte {
	raw := r.encode(v)
	return raw[:r.Size]
}

// newDescriptor builds the common Descriptor shared by every constructor
// below.
func newDescriptor(address uint16, size Width, readable, writable bool) Descriptor {
	return Descriptor{Address: address, Size: size, Readable: readable, Writable: writable}
}

// Bool builds a single-byte boolean register. Only the low bit is
// significant on decode, matching the control table convention of treating
// any odd value as true.
func Bool(address uint16, readable, writable bool) Register[bool] {
	return Register[bool]{
		Descriptor: newDescriptor(address, Width1, readable, writable),
		encode: func(v bool) [4]byte {
			if v {
				return [4]byte{1, 0, 0, 0}
			}
			return [4]byte{}
		},
		decode: func(raw [4]byte) bool {
			return raw[0]&1 == 1
		},
	}
}

// U8 builds a one-byte unsigned register.
func U8(address uint16, readable, writable bool) Register[uint8] {
	return Register[uint8]{
		Descriptor: newDescriptor(address, Width1, readable, writable),
		encode: func(v uint8) [4]byte {
			return [4]byte{v, 0, 0, 0}
		},
		decode: func(raw [4]byte) uint8 {
			return raw[0]
		},
	}
}

// I8 builds a one-byte signed register.
func I8(address uint16, readable, writable bool) Register[int8] {
	return Register[int8]{
		Descriptor: newDescriptor(address, Width1, readable, writable),
		encode: func(v int8) [4]byte {
			return [4]byte{byte(v), 0, 0, 0}
		},
		decode: func(raw [4]byte) int8 {
			return int8(raw[0])
		},
	}
}

// U16 builds a two-byte little-endian unsigned register.
func U16(address uint16, readable, writable bool) Register[uint16] {
	return Register[uint16]{
		Descriptor: newDescriptor(address, Width2, readable, writable),
		encode: func(v uint16) [4]byte {
			return [4]byte{byte(v), byte(v >> 8), 0, 0}
		},
		decode: func(raw [4]byte) uint16 {
			return uint16(raw[0]) | uint16(raw[1])<<8
		},
	}
}

// I16 builds a two-byte little-endian signed register.
func I16(address uint16, readable, writable bool) Register[int16] {
	return Register[int16]{
		Descriptor: newDescriptor(address, Width2, readable, writable),
		encode: func(v int16) [4]byte {
			u := uint16(v)
			return [4]byte{byte(u), byte(u >> 8), 0, 0}
		},
		decode: func(raw [4]byte) int16 {
			return int16(uint16(raw[0]) | uint16(raw[1])<<8)
		},
	}
}

// U32 builds a four-byte little-endian unsigned register.
func U32(address uint16, readable, writable bool) Register[uint32] {
	return Register[uint32]{
		Descriptor: newDescriptor(address, Width4, readable, writable),
		encode: func(v uint32) [4]byte {
			return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
		},
		decode: func(raw [4]byte) uint32 {
			return uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
		},
	}
}

// I32 builds a four-byte little-endian signed register.
func I32(address uint16, readable, writable bool) Register[int32] {
	return Register[int32]{
		Descriptor: newDescriptor(address, Width4, readable, writable),
		encode: func(v int32) [4]byte {
			u := uint32(v)
			return [4]byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
		},
		decode: func(raw [4]byte) int32 {
			return int32(uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24)
		},
	}
}
