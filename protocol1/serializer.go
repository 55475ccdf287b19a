package protocol1

import "bytes"

// Serialize builds the complete on-wire Protocol 1 frame for instr addressed
// to id: the 0xFF 0xFF preamble, id, length, instruction, parameters, and
// trailing checksum.
func Serialize(id PacketID, instr Instruction) []byte {
	params := instr.Parameters()
	idByte := id.Byte()
	instrByte := byte(instr.Value())
	length := byte(len(params) + 2)
	cksum := checksum(idByte, length, instrByte, params)

	frame := make([]byte, 0, 6+len(params))
	frame = append(frame, 0xFF, 0xFF, idByte, length, instrByte)
	frame = append(frame, params...)
	frame = append(frame, cksum)
	return frame
}

// NewSerializer exposes instr's serialized frame as an io.Reader, so callers
// can io.Copy it onto a transport. The whole frame is built up front by
// Serialize.
func NewSerializer(id PacketID, instr Instruction) *bytes.Reader {
	return bytes.NewReader(Serialize(id, instr))
}
