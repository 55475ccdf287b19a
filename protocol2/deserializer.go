package protocol2

type deserializePhase uint8

const (
	phaseHeader deserializePhase = iota
	phaseBody
	phaseDone
)

// Deserializer incrementally parses a Protocol 2 status frame, accepting
// bytes in arbitrary chunk sizes from a transport read loop. It tracks the
// 9-byte header (preamble, id, length, 0x55 marker, error byte), then the
// stuffed parameter body and trailing CRC, destuffing parameter bytes as it
// goes and verifying the CRC once the frame is complete.
type Deserializer struct {
	phase deserializePhase

	headerBuf [9]byte
	headerLen int
	id        byte
	checkID   bool
	expected  byte

	length       int
	bodyTotal    int
	bodyConsumed int
	st           stuffer
	crcAccum     uint16
	rawCRC       [2]byte
	rawCRCIdx    int

	params   []byte
	procErr  *ProcessingError
	err      error
	finished bool
}

// NewDeserializer returns a Deserializer that accepts a status frame from
// any responder. Use ExpectID to additionally require a specific id, which
// every unicast transaction should do.
func NewDeserializer() *Deserializer {
	return &Deserializer{}
}

// ExpectID restricts the parsed frame to one reported by id, returning a
// FormatError if another id replies. Broadcast discovery leaves this unset
// since the whole point is to learn which ids are present.
func (d *Deserializer) ExpectID(id byte) *Deserializer {
	d.checkID = true
	d.expected = id
	return d
}

// Write feeds raw bytes into the parser. It implements io.Writer so a
// transport read loop can hand it whatever chunk size arrived, splitting
// frames across calls freely.
func (d *Deserializer) Write(data []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	for i, b := range data {
		if err := d.feed(b); err != nil {
			d.err = err
			return i + 1, err
		}
		if d.finished {
			return i + 1, nil
		}
	}
	return len(data), nil
}

func (d *Deserializer) feed(b byte) error {
	switch d.phase {
	case phaseHeader:
		return d.feedHeader(b)
	case phaseBody:
		return d.feedBody(b)
	default:
		// Bytes beyond the frame's announced length.
		return FormatError{Kind: FormatLength}
	}
}

func (d *Deserializer) feedHeader(b byte) error {
	d.headerBuf[d.headerLen] = b
	d.headerLen++
	if d.headerLen < len(d.headerBuf) {
		return nil
	}

	h := d.headerBuf
	if h[0] != 0xFF || h[1] != 0xFF || h[2] != 0xFD || h[3] != 0x00 {
		return FormatError{Kind: FormatHeader}
	}
	d.id = h[4]
	if d.checkID && d.id != d.expected {
		return FormatError{Kind: FormatID}
	}
	if h[7] != byte(statusInstr) {
		return FormatError{Kind: FormatInstruction}
	}
	d.length = int(h[5]) | int(h[6])<<8
	if d.length < 4 {
		return FormatError{Kind: FormatLength}
	}
	pe, err := decodeProcessingError(h[8])
	if err != nil {
		return err
	}
	d.procErr = pe

	d.bodyTotal = d.length - 2
	d.st = stuffer{state: stateB0}
	d.crcAccum = updateCRC(0, h[:])
	d.phase = phaseBody
	return nil
}

func (d *Deserializer) feedBody(b byte) error {
	remaining := d.bodyTotal - d.bodyConsumed
	d.bodyConsumed++

	if remaining <= 2 {
		d.rawCRC[d.rawCRCIdx] = b
		d.rawCRCIdx++
		if d.rawCRCIdx < 2 {
			return nil
		}
		d.phase = phaseDone
		d.finished = true
		got := uint16(d.rawCRC[0]) | uint16(d.rawCRC[1])<<8
		if got != d.crcAccum {
			return FormatError{Kind: FormatCRC}
		}
		return nil
	}

	if d.st.stuffNext() {
		if b != 0xFD {
			return FormatError{Kind: FormatStuffByte}
		}
		d.crcAccum = updateCRC(d.crcAccum, []byte{b})
		d.st = stuffer{state: stateB0}
		return nil
	}

	d.params = append(d.params, b)
	d.crcAccum = updateCRC(d.crcAccum, []byte{b})
	next, _ := d.st.advance(b)
	d.st = next
	return nil
}

// Finished reports whether a complete, CRC-valid frame has been parsed.
func (d *Deserializer) Finished() bool {
	return d.finished
}

// ID returns the responding servo's id byte. Only meaningful once Finished
// reports true.
func (d *Deserializer) ID() byte {
	return d.id
}

// ProcessingError returns the decoded status error, if the frame reported
// one.
func (d *Deserializer) ProcessingError() *ProcessingError {
	return d.procErr
}

// Build returns the raw, destuffed parameter bytes once the frame is
// complete, or the format error that prevented completion.
func (d *Deserializer) Build() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !d.finished {
		return nil, FormatError{Kind: FormatNotFinished}
	}
	return d.params, nil
}
