package protocol2

import "bytes"

// stuffBytes applies the Protocol 2 byte-stuffing rule to a raw (unstuffed)
// byte sequence, inserting an extra 0xFD immediately after every occurrence
// of 0xFF 0xFF 0xFD. The state machine starts fresh at stateB0 because the
// fixed 4-byte header (which always precedes this sequence on the wire)
// cannot itself contain the pattern: the ID byte can never be 0xFF (the
// highest valid PacketID is the broadcast value 0xFE) and the LEN field
// never reaches 0xFF for the packet sizes this driver produces, so the
// rolling window is always back at B0 by the time the instruction byte is
// reached.
func stuffBytes(raw []byte) []byte {
	out := make([]byte, 0, len(raw)+4)
	st := stuffer{state: stateB0}
	for _, b := range raw {
		out = append(out, b)
		next, _ := st.advance(b)
		st = next
		if st.stuffNext() {
			out = append(out, 0xFD)
			st = stuffer{state: stateB0}
		}
	}
	return out
}

// Serialize builds the complete on-wire Protocol 2 frame for instr addressed
// to id: header, length, stuffed instruction+parameters, and trailing CRC-16.
func Serialize(id PacketID, instr Instruction) []byte {
	source := append([]byte{byte(instr.Value())}, instr.Parameters()...)
	body := stuffBytes(source)

	length := len(body) + 2 // body (instr+stuffed params) + 2 CRC bytes
	header := []byte{0xFF, 0xFF, 0xFD, 0x00, id.Byte(), byte(length), byte(length >> 8)}

	frame := make([]byte, 0, len(header)+len(body)+2)
	frame = append(frame, header...)
	frame = append(frame, body...)

	crc := updateCRC(0, frame)
	frame = append(frame, byte(crc), byte(crc>>8))
	return frame
}

// NewSerializer exposes instr's serialized frame as an io.Reader, so callers
// can io.Copy it onto a transport. The whole frame is built up front by
// Serialize.
func NewSerializer(id PacketID, instr Instruction) *bytes.Reader {
	return bytes.NewReader(Serialize(id, instr))
}
