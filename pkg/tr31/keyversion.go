package tr31

// KeyVersion is the parsed interpretation of header bytes 9-10
// (spec.md §3.2, Design Note 9.1). It is a closed sum type: exactly
// one of KeyVersionUnused, KeyVersionValue, or KeyVersionComponent.
// Using an interface with unexported marker methods instead of a
// discriminator+union struct means there is no invariant to keep in
// sync between a tag and a payload — the type itself is the tag.
type KeyVersion interface {
	isKeyVersion()
}

// KeyVersionUnused means both key-version characters were "00".
type KeyVersionUnused struct{}

func (KeyVersionUnused) isKeyVersion() {}

// KeyVersionValue means the field holds a two-digit decimal version
// number (header bytes 9-10 both decimal digits, not "c*").
type KeyVersionValue struct {
	Value byte
}

func (KeyVersionValue) isKeyVersion() {}

// KeyVersionComponent means the field holds a component number
// (header byte 9 is 'c', header byte 10 is the single-digit number).
type KeyVersionComponent struct {
	Number byte
}

func (KeyVersionComponent) isKeyVersion() {}

// parseKeyVersion interprets the two raw ASCII characters at header
// bytes 9-10 per spec.md §4.4.
func parseKeyVersion(raw [2]byte) (KeyVersion, error) {
	if raw[0] == '0' && raw[1] == '0' {
		return KeyVersionUnused{}, nil
	}
	if raw[0] == 'c' {
		if raw[1] < '0' || raw[1] > '9' {
			return nil, ErrInvalidKeyVersionField
		}

		return KeyVersionComponent{Number: raw[1] - '0'}, nil
	}
	if raw[0] < '0' || raw[0] > '9' || raw[1] < '0' || raw[1] > '9' {
		return nil, ErrInvalidKeyVersionField
	}

	return KeyVersionValue{Value: (raw[0]-'0')*10 + (raw[1] - '0')}, nil
}

// encodeKeyVersion is the inverse of parseKeyVersion, used by the
// internal round-trip test helper (spec.md §8.1.4).
func encodeKeyVersion(kv KeyVersion) [2]byte {
	switch v := kv.(type) {
	case KeyVersionUnused:
		return [2]byte{'0', '0'}
	case KeyVersionComponent:
		return [2]byte{'c', '0' + v.Number}
	case KeyVersionValue:
		return [2]byte{'0' + v.Value/10, '0' + v.Value%10}
	default:
		return [2]byte{'0', '0'}
	}
}
