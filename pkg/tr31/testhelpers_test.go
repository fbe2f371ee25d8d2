package tr31

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/ono-connect/tr31/internal/blockcipher"
)

// buildHeader assembles the 16-byte fixed header plus any optional
// blocks. It mirrors spec.md §4.4's header layout and exists purely to
// build fixtures for decrypt-path tests: this package never exposes
// key-block creation.
func buildHeader(version Version, length int, usage KeyUsage, alg Algorithm, mou ModeOfUse, kv KeyVersion, exp Exportability, optionalBlocks []OptionalBlock) []byte {
	var body []byte
	for _, b := range optionalBlocks {
		body = append(body, marshalOptionalBlock(b)...)
	}

	h := make([]byte, 0, fixedHeaderLen+len(body))
	h = append(h, byte(version))
	h = append(h, []byte(fmt.Sprintf("%04d", length))...)
	h = append(h, byte(usage>>8), byte(usage))
	h = append(h, byte(alg))
	h = append(h, byte(mou))
	kvb := encodeKeyVersion(kv)
	h = append(h, kvb[0], kvb[1])
	h = append(h, byte(exp))
	h = append(h, []byte(fmt.Sprintf("%02d", len(optionalBlocks)))...)
	h = append(h, '0', '0') // reserved bytes 14-15
	h = append(h, body...)

	return h
}

func upperHex(b []byte) string {
	return strings.ToUpper(fmt.Sprintf("%x", b))
}

// buildVariantKeyBlock constructs a complete ASCII key block for
// version A or C using the documented variant-binding procedure
// (spec.md §4.5.1), which has no circular dependency between
// encryption and authentication: the MAC covers the *plaintext*
// payload, so this is a genuine forward construction, not a replica
// of the (explicitly out-of-scope) creation path for B/D.
func buildVariantKeyBlock(version Version, kbpk []byte, usage KeyUsage, alg Algorithm, mou ModeOfUse, kv KeyVersion, exp Exportability, keyBytes []byte) (string, error) {
	plaintext := encodeKeyPayload(keyBytes, 0)
	blockSize := version.cipherBlockSize()
	if padNeeded := (blockSize - len(plaintext)%blockSize) % blockSize; padNeeded > 0 {
		pad, err := readFull(rand.Reader, padNeeded)
		if err != nil {
			return "", err
		}
		plaintext = append(plaintext, pad...)
	}

	authHexLen := version.authenticatorHexLen()
	headerLen := fixedHeaderLen
	total := headerLen + len(plaintext)*2 + authHexLen

	header := buildHeader(version, total, usage, alg, mou, kv, exp, nil)

	kbek, kbak := deriveVariantKeys(kbpk)

	zeroIV := make([]byte, 8)
	ciphertext, err := blockcipher.Std.TDESCBCEncrypt(kbek, zeroIV, plaintext)
	if err != nil {
		return "", err
	}

	mac, err := cbcMAC(kbak, append(append([]byte(nil), header...), plaintext...), authHexLen/2)
	if err != nil {
		return "", err
	}

	return string(header) + upperHex(ciphertext) + upperHex(mac), nil
}
