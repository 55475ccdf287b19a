package protocol2

import "errors"

// stuffState walks the fixed 4-byte header (0xFF 0xFF 0xFD 0x00) and then
// tracks occurrences of the 0xFF 0xFF 0xFD pattern in everything that
// follows. This mirrors the original Rust BitStufferState: H0/H1/H2/R walk
// the header, B0/B1/B2/B3 track the rolling 3-byte window over the payload.
type stuffState uint8

const (
	stateH0 stuffState = iota
	stateH1
	stateH2
	stateR
	stateB0
	stateB1
	stateB2
	stateB3
)

// errHeaderMismatch reports that a byte did not match the expected
// 0xFF 0xFF 0xFD 0x00 preamble.
var errHeaderMismatch = errors.New("protocol2: header byte mismatch")

// stuffer is a single rolling instance of the bit-stuffer, advanced one raw
// byte at a time. The zero value starts in stateH0; the serializer and the
// deserializer instead start it at stateB0 on the instruction byte, and the
// deserializer checks the header bytes directly.
type stuffer struct {
	state stuffState
}

// stuffNext reports whether the next byte, if 0xFD, must be treated as an
// inserted stuff byte rather than payload.
func (s stuffer) stuffNext() bool {
	return s.state == stateB3
}

// advance feeds one raw on-wire byte (header, payload, or stuff byte alike)
// through the state machine and returns the resulting state. It returns
// errHeaderMismatch if b violates the fixed 4-byte preamble.
func (s stuffer) advance(b byte) (stuffer, error) {
	switch s.state {
	case stateH0:
		if b != 0xFF {
			return s, errHeaderMismatch
		}
		return stuffer{stateH1}, nil
	case stateH1:
		if b != 0xFF {
			return s, errHeaderMismatch
		}
		return stuffer{stateH2}, nil
	case stateH2:
		if b != 0xFD {
			return s, errHeaderMismatch
		}
		return stuffer{stateR}, nil
	case stateR:
		if b != 0x00 {
			return s, errHeaderMismatch
		}
		return stuffer{stateB0}, nil
	case stateB0:
		if b == 0xFF {
			return stuffer{stateB1}, nil
		}
		return stuffer{stateB0}, nil
	case stateB1:
		if b == 0xFF {
			return stuffer{stateB2}, nil
		}
		return stuffer{stateB0}, nil
	case stateB2:
		switch b {
		case 0xFD:
			return stuffer{stateB3}, nil
		case 0xFF:
			return stuffer{stateB2}, nil
		default:
			return stuffer{stateB0}, nil
		}
	case stateB3:
		// The byte that triggered stuffNext() has now been consumed
		// (as either the inserted stuff byte or, on the decode side,
		// the caller already rejected anything but 0xFD). Either way
		// the rolling window resets.
		if b == 0xFF {
			return stuffer{stateB1}, nil
		}
		return stuffer{stateB0}, nil
	default:
		return s, errHeaderMismatch
	}
}
