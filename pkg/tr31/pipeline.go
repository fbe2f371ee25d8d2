package tr31

import (
	"github.com/ono-connect/tr31/internal/blockcipher"
	"github.com/ono-connect/tr31/internal/diag"
	"github.com/ono-connect/tr31/internal/zeroize"
)

// decryptAndVerify dispatches on version to implement spec.md §4.5.1
// (variant binding, A/C) or §4.5.2 (derivation binding, B/D), returning
// the recovered key bytes once the authenticator has verified.
func decryptAndVerify(version Version, header, payload, authenticator, kbpk []byte) ([]byte, error) {
	diag.Binding(byte(version), version.bindingMethod(), len(authenticator))

	switch version {
	case VersionA, VersionC:
		return decryptVariant(header, payload, authenticator, kbpk)
	case VersionB:
		return decryptDerivationTDES(header, payload, authenticator, kbpk)
	case VersionD:
		return decryptDerivationAES(header, payload, authenticator, kbpk)
	default:
		return nil, ErrUnsupportedVersion
	}
}

// decryptVariant implements versions A and C: decrypt first under a
// zero IV, then MAC the header concatenated with the decrypted payload
// and compare (spec.md §4.5.1).
func decryptVariant(header, payload, authenticator, kbpk []byte) ([]byte, error) {
	if len(kbpk) != 16 && len(kbpk) != 24 {
		return nil, ErrUnsupportedKBPKLength
	}

	kbek, kbak := deriveVariantKeys(kbpk)
	defer zeroize.All(kbek, kbak)

	zeroIV := make([]byte, 8)
	plaintext, err := blockcipher.Std.TDESCBCDecrypt(kbek, zeroIV, payload)
	if err != nil {
		return nil, wrapInternal(err)
	}
	defer zeroize.All(plaintext)

	mac, err := cbcMAC(kbak, append(append([]byte(nil), header...), plaintext...), len(authenticator))
	if err != nil {
		return nil, err
	}
	defer zeroize.All(mac)

	if !constantTimeEqual(mac, authenticator) {
		return nil, ErrKeyBlockVerificationFailed
	}

	return extractKey(plaintext)
}

// decryptDerivationTDES implements version B: verify the CMAC over
// header∥encrypted payload first, then decrypt using the verified
// authenticator as the CBC IV (spec.md §4.5.2).
func decryptDerivationTDES(header, payload, authenticator, kbpk []byte) ([]byte, error) {
	if len(kbpk) != 16 && len(kbpk) != 24 {
		return nil, ErrUnsupportedKBPKLength
	}

	kbek, kbak, err := deriveTDESDerivationKeys(kbpk)
	if err != nil {
		return nil, err
	}
	defer zeroize.All(kbek, kbak)

	mac, err := cmacTDES(kbak, append(append([]byte(nil), header...), payload...))
	if err != nil {
		return nil, err
	}
	defer zeroize.All(mac)

	if !constantTimeEqual(mac, authenticator) {
		return nil, ErrKeyBlockVerificationFailed
	}

	plaintext, err := blockcipher.Std.TDESCBCDecrypt(kbek, authenticator, payload)
	if err != nil {
		return nil, wrapInternal(err)
	}
	defer zeroize.All(plaintext)

	return extractKey(plaintext)
}

// decryptDerivationAES implements version D: identical shape to
// decryptDerivationTDES, but with AES-CMAC derivation and AES-CBC
// decryption (spec.md §4.5.2).
func decryptDerivationAES(header, payload, authenticator, kbpk []byte) ([]byte, error) {
	if len(kbpk) != 16 && len(kbpk) != 24 && len(kbpk) != 32 {
		return nil, ErrUnsupportedKBPKLength
	}

	kbek, kbak, err := deriveAESDerivationKeys(kbpk)
	if err != nil {
		return nil, err
	}
	defer zeroize.All(kbek, kbak)

	mac, err := cmacAES(kbak, append(append([]byte(nil), header...), payload...))
	if err != nil {
		return nil, err
	}
	defer zeroize.All(mac)

	if !constantTimeEqual(mac, authenticator) {
		return nil, ErrKeyBlockVerificationFailed
	}

	plaintext, err := blockcipher.Std.AESCBCDecrypt(kbek, authenticator, payload)
	if err != nil {
		return nil, wrapInternal(err)
	}
	defer zeroize.All(plaintext)

	return extractKey(plaintext)
}
