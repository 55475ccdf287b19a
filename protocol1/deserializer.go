package protocol1

type deserializePhase uint8

const (
	phaseHeader deserializePhase = iota
	phaseBody
	phaseDone
)

// Deserializer incrementally parses a Protocol 1 status frame, accepting
// bytes in arbitrary chunk sizes from a transport read loop. It tracks the
// 5-byte header (preamble, id, length, error byte), then the parameter body
// and trailing checksum.
type Deserializer struct {
	phase deserializePhase

	headerBuf [5]byte
	headerLen int
	id        byte
	checkID   bool
	expected  byte

	length       int
	bodyTotal    int
	bodyConsumed int

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
// FormatError if another id replies.
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
	if h[0] != 0xFF || h[1] != 0xFF {
		return FormatError{Kind: FormatHeader}
	}
	d.id = h[2]
	if d.checkID && d.id != d.expected {
		return FormatError{Kind: FormatID}
	}
	d.length = int(h[3])
	if d.length < 2 {
		return FormatError{Kind: FormatLength}
	}
	pe, err := decodeProcessingError(h[4])
	if err != nil {
		return err
	}
	d.procErr = pe
	d.bodyTotal = d.length - 1 // params, then the trailing checksum byte
	d.phase = phaseBody
	return nil
}

func (d *Deserializer) feedBody(b byte) error {
	remaining := d.bodyTotal - d.bodyConsumed
	d.bodyConsumed++

	if remaining == 1 {
		d.phase = phaseDone
		d.finished = true
		want := checksum(d.headerBuf[2], d.headerBuf[3], d.headerBuf[4], d.params)
		if b != want {
			return FormatError{Kind: FormatChecksum}
		}
		return nil
	}

	d.params = append(d.params, b)
	return nil
}

// Finished reports whether a complete, checksum-valid frame has been parsed.
func (d *Deserializer) Finished() bool {
	return d.finished
}

// ID returns the responding servo's id byte. Only meaningful once Finished
// reports true.
func (d *Deserializer) ID() byte {
	return d.id
}

// ProcessingError returns the decoded status error, if the frame reported one.
func (d *Deserializer) ProcessingError() *ProcessingError {
	return d.procErr
}

// Build returns the raw parameter bytes once the frame is complete, or the
// format error that prevented completion.
func (d *Deserializer) Build() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if !d.finished {
		return nil, FormatError{Kind: FormatNotFinished}
	}
	return d.params, nil
}
