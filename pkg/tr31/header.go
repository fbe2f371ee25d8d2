package tr31

import "github.com/ono-connect/tr31/internal/diag"

// fixedHeaderLen is the size in bytes of the fixed-format portion of
// the header, before any optional blocks (spec.md §4.4).
const fixedHeaderLen = 16

// Header is the parsed fixed-format portion of a TR-31 key block
// header (spec.md §3.2, §4.4). OptionalBlocks and the consumed length
// of the whole header section (fixed header + optional blocks,
// including any padding block) live alongside it in parsedHeader.
type Header struct {
	Version        Version
	Length         int // total ASCII length of the original key block
	KeyUsage       KeyUsage
	Algorithm      Algorithm
	ModeOfUse      ModeOfUse
	KeyVersion     KeyVersion
	Exportability  Exportability
	NumOptBlocks   int
	Reserved       [2]byte // header bytes 14-15; preserved, not validated (see DESIGN.md)
}

// parsedHeader bundles the fixed header with the optional-block chain
// and the exact byte span it occupied in the original ASCII buffer.
type parsedHeader struct {
	Header
	OptionalBlocks []OptionalBlock
	HeaderLen      int // fixed header + optional blocks + padding block, in ASCII bytes
	hadPadding     bool
}

// parseHeader implements spec.md §4.4 validation steps 2 through 9 and
// parses the length field of step 1. The caller (Import) checks the
// buffer's length bounds before calling this, and after it compares the
// parsed length field with the buffer length and performs step 10
// (payload/authenticator split).
func parseHeader(buf []byte) (*parsedHeader, error) {
	if len(buf) < fixedHeaderLen {
		return nil, ErrInvalidLength
	}

	version := Version(buf[0])
	if !version.valid() {
		return nil, ErrUnsupportedVersion
	}

	length, ok := parseDecimalN(buf[1:5])
	if !ok {
		return nil, ErrInvalidLengthField
	}

	usage := KeyUsage(uint16(buf[5])<<8 | uint16(buf[6]))
	if !usage.valid() {
		return nil, ErrUnsupportedKeyUsage
	}

	algorithm := Algorithm(buf[7])
	if !algorithm.valid() {
		return nil, ErrUnsupportedAlgorithm
	}

	modeOfUse := ModeOfUse(buf[8])
	if !modeOfUse.valid() {
		return nil, ErrUnsupportedModeOfUse
	}

	kv, err := parseKeyVersion([2]byte{buf[9], buf[10]})
	if err != nil {
		return nil, err
	}

	exportability := Exportability(buf[11])
	if !exportability.valid() {
		return nil, ErrUnsupportedExportability
	}

	numOptBlocks, ok := parseDecimal(buf[12:14])
	if !ok {
		return nil, ErrInvalidNumberOfOptionalBlocksField
	}

	var reserved [2]byte
	copy(reserved[:], buf[14:16])

	optBlocks, consumed, hadPadding, err := parseOptionalBlocks(buf[fixedHeaderLen:], numOptBlocks)
	if err != nil {
		return nil, err
	}

	h := &parsedHeader{
		Header: Header{
			Version:       version,
			Length:        length,
			KeyUsage:      usage,
			Algorithm:     algorithm,
			ModeOfUse:     modeOfUse,
			KeyVersion:    kv,
			Exportability: exportability,
			NumOptBlocks:  numOptBlocks,
			Reserved:      reserved,
		},
		OptionalBlocks: optBlocks,
		HeaderLen:      fixedHeaderLen + consumed,
		hadPadding:     hadPadding,
	}

	diag.Header(byte(version), numOptBlocks, string([]byte{buf[5], buf[6]}))

	return h, nil
}
