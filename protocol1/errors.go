package protocol1

import (
	"fmt"
	"strings"
)

// FormatKind distinguishes the ways a Protocol 1 frame can fail to parse
// even when every byte arrived without a transport error.
type FormatKind uint8

const (
	// FormatHeader means the fixed 0xFF 0xFF preamble did not match.
	FormatHeader FormatKind = iota
	// FormatID means the frame's ID byte did not match the expected responder.
	FormatID
	// FormatLength means the declared LEN field and the bytes actually
	// received disagree.
	FormatLength
	// FormatChecksum means the trailing checksum did not match the
	// computed value.
	FormatChecksum
	// FormatInvalidError means the status ERR byte had its reserved top bit
	// set, so it cannot be decoded as a processing error.
	FormatInvalidError
	// FormatNotFinished means Build was called before the deserializer
	// consumed a complete frame.
	FormatNotFinished
)

func (k FormatKind) String() string {
	switch k {
	case FormatHeader:
		return "header mismatch"
	case FormatID:
		return "unexpected id"
	case FormatLength:
		return "length mismatch"
	case FormatChecksum:
		return "checksum mismatch"
	case FormatInvalidError:
		return "invalid error byte"
	case FormatNotFinished:
		return "frame not complete"
	default:
		return "unknown format error"
	}
}

// FormatError reports a Protocol 1 frame that could not be parsed.
type FormatError struct {
	Kind FormatKind
}

func (e FormatError) Error() string {
	return fmt.Sprintf("protocol1: format error: %s", e.Kind)
}

// ProcessingError is the single status-byte bitfield Protocol 1 reports when
// an instruction reached the device but could not be carried out. Several
// named conditions share a bit, a quirk inherited directly from the original
// control table documentation rather than a transcription mistake here.
type ProcessingError uint8

const (
	bitInstructionError   = 1 << 6
	bitOverloadError      = 1 << 5
	bitChecksumError      = 1 << 4
	bitRangeOverheating   = 1 << 3 // range_error and overheating_error both occupy bit 3
	bitAngleLimitError    = 1 << 1
	bitInputVoltageError  = 1 << 0
	bitReservedFormatOnly = 1 << 7
)

// InstructionError reports an undefined instruction was sent.
func (e ProcessingError) InstructionError() bool { return e&bitInstructionError != 0 }

// OverloadError reports the servo's load exceeded its configured maximum.
func (e ProcessingError) OverloadError() bool { return e&bitOverloadError != 0 }

// ChecksumError reports the servo computed a different checksum for the request.
func (e ProcessingError) ChecksumError() bool { return e&bitChecksumError != 0 }

// RangeError reports a parameter fell outside the instruction's defined range.
func (e ProcessingError) RangeError() bool { return e&bitRangeOverheating != 0 }

// OverheatingError reports the servo's internal temperature exceeded its limit.
// It shares a bit with RangeError in the control table this is grounded on.
func (e ProcessingError) OverheatingError() bool { return e&bitRangeOverheating != 0 }

// AngleLimitError reports a goal position fell outside the configured angle limits.
func (e ProcessingError) AngleLimitError() bool { return e&bitAngleLimitError != 0 }

// InputVoltageError reports the supplied voltage fell outside the servo's operating range.
func (e ProcessingError) InputVoltageError() bool { return e&bitInputVoltageError != 0 }

func (e ProcessingError) Error() string {
	var flags []string
	if e.InstructionError() {
		flags = append(flags, "instruction_error")
	}
	if e.OverloadError() {
		flags = append(flags, "overload_error")
	}
	if e.ChecksumError() {
		flags = append(flags, "checksum_error")
	}
	if e.RangeError() {
		flags = append(flags, "range_error")
	}
	if e.OverheatingError() {
		flags = append(flags, "overheating_error")
	}
	if e.AngleLimitError() {
		flags = append(flags, "angle_limit_error")
	}
	if e.InputVoltageError() {
		flags = append(flags, "input_voltage_error")
	}
	if len(flags) == 0 {
		return "protocol1: processing error: [none]"
	}
	return fmt.Sprintf("protocol1: processing error: [%s]", strings.Join(flags, ", "))
}

// decodeProcessingError splits a raw status ERR byte into a ProcessingError,
// or a FormatError if the reserved bit 7 is set.
func decodeProcessingError(b byte) (*ProcessingError, error) {
	if b&bitReservedFormatOnly != 0 {
		return nil, FormatError{Kind: FormatInvalidError}
	}
	if b == 0 {
		return nil, nil
	}
	pe := ProcessingError(b)
	return &pe, nil
}
