package tr31

import "github.com/ono-connect/tr31/internal/blockcipher"

const (
	kbekVariantXOR = 0x45
	kbakVariantXOR = 0x4D
)

// deriveVariantKeys implements TR-31 variant key binding (versions A
// and C): KBEK and KBAK are the KBPK with a fixed byte XORed into
// every byte (spec.md §4.3.1).
func deriveVariantKeys(kbpk []byte) (kbek, kbak []byte) {
	kbek = make([]byte, len(kbpk))
	kbak = make([]byte, len(kbpk))
	for i, b := range kbpk {
		kbek[i] = b ^ kbekVariantXOR
		kbak[i] = b ^ kbakVariantXOR
	}

	return kbek, kbak
}

// tdesKDFTemplate is the fixed 8-byte CMAC-KDF input block used to
// derive one of KBEK/KBAK from a TDES KBPK (spec.md §4.3.2, TR-31:2018
// §5.3.2.1). Byte 0 is the iteration counter, incremented by one for
// each additional CMAC call a longer KBPK requires.
var tdesKDFTemplate = map[int]struct{ kbek, kbak [8]byte }{
	16: {
		kbek: [8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80},
		kbak: [8]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x80},
	},
	24: {
		kbek: [8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0xC0},
		kbak: [8]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x01, 0x00, 0xC0},
	},
}

// aesKDFTemplate mirrors tdesKDFTemplate for an AES KBPK (spec.md
// §4.3.3, TR-31:2018 §5.3.2.3).
var aesKDFTemplate = map[int]struct{ kbek, kbak [8]byte }{
	16: {
		kbek: [8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x80},
		kbak: [8]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x00, 0x80},
	},
	24: {
		kbek: [8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x03, 0x00, 0xC0},
		kbak: [8]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x03, 0x00, 0xC0},
	},
	32: {
		kbek: [8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x04, 0x01, 0x00},
		kbak: [8]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x04, 0x01, 0x00},
	},
}

// deriveTDESDerivationKeys implements version B's CMAC-KDF (TR-31:2018
// §5.3.2.1): KBEK and KBAK are each built by repeated CMAC calls under
// the KBPK, incrementing the template's counter byte each iteration,
// until kbpk_len bytes of key material have been produced.
func deriveTDESDerivationKeys(kbpk []byte) (kbek, kbak []byte, err error) {
	tpl, ok := tdesKDFTemplate[len(kbpk)]
	if !ok {
		return nil, nil, ErrUnsupportedKBPKLength
	}

	kbek, err = tdesDerive(kbpk, tpl.kbek)
	if err != nil {
		return nil, nil, err
	}

	kbak, err = tdesDerive(kbpk, tpl.kbak)
	if err != nil {
		return nil, nil, err
	}

	return kbek, kbak, nil
}

func tdesDerive(kbpk []byte, template [8]byte) ([]byte, error) {
	outLen := len(kbpk)
	out := make([]byte, 0, outLen)
	input := template

	for len(out) < outLen {
		mac, err := cmacTDES(kbpk, input[:])
		if err != nil {
			return nil, err
		}
		out = append(out, mac...)
		input[0]++
	}

	return out[:outLen], nil
}

// deriveAESDerivationKeys implements version D's CMAC-KDF (TR-31:2018
// §5.3.2.3). An AES-192 KBPK needs 24 bytes of key material from
// 16-byte CMAC outputs, so the final iteration's contribution is
// truncated to the bytes still needed.
func deriveAESDerivationKeys(kbpk []byte) (kbek, kbak []byte, err error) {
	tpl, ok := aesKDFTemplate[len(kbpk)]
	if !ok {
		return nil, nil, ErrUnsupportedKBPKLength
	}

	kbek, err = aesDerive(kbpk, tpl.kbek)
	if err != nil {
		return nil, nil, err
	}

	kbak, err = aesDerive(kbpk, tpl.kbak)
	if err != nil {
		return nil, nil, err
	}

	return kbek, kbak, nil
}

func aesDerive(kbpk []byte, template [8]byte) ([]byte, error) {
	outLen := len(kbpk)
	out := make([]byte, 0, outLen)
	input := template

	for len(out) < outLen {
		mac, err := cmacAES(kbpk, input[:])
		if err != nil {
			return nil, err
		}

		remaining := outLen - len(out)
		if remaining < len(mac) {
			out = append(out, mac[:remaining]...)
		} else {
			out = append(out, mac...)
		}
		input[0]++
	}

	return out[:outLen], nil
}

// tdesKCV returns the leftmost 3 bytes of TDES-ECB(key, 0), the
// standard key check value for a TDES key.
func tdesKCV(key []byte) ([]byte, error) {
	zero := make([]byte, 8)

	ct, err := blockcipher.Std.TDESECBEncrypt(key, zero)
	if err != nil {
		return nil, wrapInternal(err)
	}

	return ct[:3], nil
}

// aesKCV returns the leftmost 5 bytes of AES-CMAC(key, 0), the
// standard key check value for an AES key.
func aesKCV(key []byte) ([]byte, error) {
	zero := make([]byte, 16)

	mac, err := cmacAES(key, zero)
	if err != nil {
		return nil, err
	}

	return mac[:5], nil
}
