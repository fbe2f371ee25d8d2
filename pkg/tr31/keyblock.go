package tr31

import (
	"encoding/hex"

	"github.com/ono-connect/tr31/internal/diag"
	"github.com/ono-connect/tr31/internal/zeroize"
)

const (
	minKeyBlockLen = 16
	maxKeyBlockLen = 9999
)

// KeyBlock is the parsed, and optionally decrypted and verified,
// representation of one TR-31 key block (spec.md §3.2). It owns the
// header, optional-block, payload, authenticator, and recovered-key
// byte slices; Release zeroizes and discards the recovered key, its KCV
// and the payload, and leaves the others in place.
type KeyBlock struct {
	Header         Header
	OptionalBlocks []OptionalBlock
	Key            Key

	rawHeader        []byte
	rawPayload       []byte
	rawAuthenticator []byte
}

// Import parses and validates an ASCII-encoded TR-31 key block,
// decrypting and verifying it under kbpk when supplied (spec.md §4.4,
// §4.5). A nil kbpk performs structural parsing only, per §4.5.4.
func Import(asciiKeyBlock []byte, kbpk []byte) (*KeyBlock, error) {
	if len(asciiKeyBlock) < minKeyBlockLen || len(asciiKeyBlock) > maxKeyBlockLen {
		return nil, ErrInvalidLength
	}

	ph, err := parseHeader(asciiKeyBlock)
	if err != nil {
		return nil, err
	}

	if ph.Length != len(asciiKeyBlock) {
		return nil, ErrInvalidLengthField
	}

	blockSize := ph.Version.cipherBlockSize()
	if ph.HeaderLen%blockSize != 0 {
		return nil, ErrInvalidOptionalBlockData
	}

	rest := asciiKeyBlock[ph.HeaderLen:]
	authHexLen := ph.Version.authenticatorHexLen()
	if len(rest) < authHexLen {
		return nil, ErrInvalidAuthenticatorField
	}

	payloadHex := rest[:len(rest)-authHexLen]
	authHex := rest[len(rest)-authHexLen:]

	if !isHexUpper(payloadHex) || len(payloadHex)%2 != 0 {
		return nil, ErrInvalidPayloadField
	}
	if !isHexUpper(authHex) {
		return nil, ErrInvalidAuthenticatorField
	}

	payload := make([]byte, len(payloadHex)/2)
	if _, err := hex.Decode(payload, payloadHex); err != nil {
		return nil, ErrInvalidPayloadField
	}
	if len(payload) == 0 || len(payload)%blockSize != 0 {
		return nil, ErrInvalidPayloadField
	}

	authenticator := make([]byte, len(authHex)/2)
	if _, err := hex.Decode(authenticator, authHex); err != nil {
		return nil, ErrInvalidAuthenticatorField
	}

	kb := &KeyBlock{
		Header:           ph.Header,
		OptionalBlocks:   ph.OptionalBlocks,
		rawHeader:        append([]byte(nil), asciiKeyBlock[:ph.HeaderLen]...),
		rawPayload:       payload,
		rawAuthenticator: authenticator,
	}

	kb.Key = Key{
		Usage:         ph.KeyUsage,
		Algorithm:     ph.Algorithm,
		ModeOfUse:     ph.ModeOfUse,
		KeyVersion:    ph.KeyVersion,
		Exportability: ph.Exportability,
	}

	if kbpk == nil {
		diag.Verify(byte(ph.Version), false)

		return kb, nil
	}

	keyBytes, err := decryptAndVerify(ph.Version, kb.rawHeader, payload, authenticator, kbpk)
	if err != nil {
		kb.Release()

		return nil, err
	}

	kb.Key.Data = keyBytes

	kcv, err := keyCheckValue(ph.Algorithm, keyBytes)
	if err == nil {
		kb.Key.KCV = kcv
	}

	diag.Verify(byte(ph.Version), true)

	return kb, nil
}

// Release zeroizes every secret byte slice the KeyBlock owns (the
// recovered key, its KCV and the payload) and drops its references to
// them. Non-secret structural state (header fields, optional blocks,
// raw header and authenticator) is left intact for inspection after
// release.
func (kb *KeyBlock) Release() {
	zeroize.All(kb.Key.Data, kb.Key.KCV, kb.rawPayload)
	kb.Key.Data = nil
	kb.Key.KCV = nil
	kb.rawPayload = nil
}

func keyCheckValue(alg Algorithm, key []byte) ([]byte, error) {
	switch alg {
	case AlgorithmTDES:
		return tdesKCV(key)
	case AlgorithmAES:
		return aesKCV(key)
	default:
		return nil, nil
	}
}

func isHexUpper(b []byte) bool {
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}
