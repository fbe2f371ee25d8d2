package tr31

// Key is the cryptographic key material recovered from a successfully
// imported key block (spec.md §3.2, §4.5.3). KCV is populated only
// when the caller supplied a KBPK, since it is computed over the
// recovered key bytes.
type Key struct {
	Usage         KeyUsage
	Algorithm     Algorithm
	ModeOfUse     ModeOfUse
	KeyVersion    KeyVersion
	Exportability Exportability
	Data          []byte
	KCV           []byte
}

// extractKey implements spec.md §4.5.3: the decrypted payload is laid
// out as a 2-byte big-endian bit length, the key bytes, then random
// padding. An inconsistent bit length yields ErrInvalidKeyLength.
func extractKey(plaintext []byte) ([]byte, error) {
	if len(plaintext) < 2 {
		return nil, ErrInvalidKeyLength
	}

	bitLen := int(plaintext[0])<<8 | int(plaintext[1])
	if bitLen%8 != 0 {
		return nil, ErrInvalidKeyLength
	}

	byteLen := bitLen / 8
	if byteLen < 0 || byteLen > len(plaintext)-2 {
		return nil, ErrInvalidKeyLength
	}

	return append([]byte(nil), plaintext[2:2+byteLen]...), nil
}

// encodeKeyPayload is the inverse of extractKey, used only by the
// internal round-trip test helper to rebuild a plaintext payload
// (spec.md §8.1.4). padLen zero bytes are appended after the key bytes;
// the result is not filled with random padding.
func encodeKeyPayload(keyBytes []byte, padLen int) []byte {
	bitLen := len(keyBytes) * 8
	out := make([]byte, 2+len(keyBytes)+padLen)
	out[0] = byte(bitLen >> 8)
	out[1] = byte(bitLen)
	copy(out[2:], keyBytes)

	return out
}
