package tr31

import (
	"crypto/subtle"

	"github.com/ono-connect/tr31/internal/blockcipher"
)

// constantTimeEqual reports whether a and b are equal, in time that
// does not depend on where they first differ. Authenticator
// comparisons in pipeline.go always go through this, never ==.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	return subtle.ConstantTimeCompare(a, b) == 1
}

// cbcMAC computes the ISO 9797-1 Algorithm 1 CBC-MAC of data under key,
// with a zero IV, truncated to the leftmost macLen bytes of the final
// block. Used for key block versions A and C (spec.md §4.5.1). data
// must already be a positive multiple of the TDES block size.
func cbcMAC(key, data []byte, macLen int) ([]byte, error) {
	iv := make([]byte, 8)

	ciphertext, err := blockcipher.Std.TDESCBCEncrypt(key, iv, data)
	if err != nil {
		return nil, wrapInternal(err)
	}

	last := ciphertext[len(ciphertext)-8:]

	return append([]byte(nil), last[:macLen]...), nil
}

// cmacAES computes NIST SP 800-38B CMAC over data under key, using the
// AES block cipher (16-byte blocks, Rb = 0x87).
func cmacAES(key, data []byte) ([]byte, error) {
	return cmac(key, data, 16, 0x87, blockcipher.Std.AESECBEncrypt)
}

// cmacTDES computes CMAC over data under key, using TDES (8-byte
// blocks, Rb = 0x1B). Version B's authenticator and its KBPK
// derivation both build on this primitive; version D uses cmacAES.
func cmacTDES(key, data []byte) ([]byte, error) {
	return cmac(key, data, 8, 0x1B, blockcipher.Std.TDESECBEncrypt)
}

// encryptBlock is a single-block ECB encryption primitive, satisfied
// by blockcipher.Provider's AESECBEncrypt/TDESECBEncrypt.
type encryptBlock func(key, block []byte) ([]byte, error)

// cmac implements NIST SP 800-38B / ISO 9797-1 Algorithm 5 CMAC
// generically over any block size and Rb constant, driven by a
// single-block ECB encryption primitive. This lets the same
// implementation serve both AES (blockSize 16, rb 0x87) and TDES
// (blockSize 8, rb 0x1B).
func cmac(key, data []byte, blockSize int, rb byte, encrypt encryptBlock) ([]byte, error) {
	zero := make([]byte, blockSize)

	l, err := encrypt(key, zero)
	if err != nil {
		return nil, wrapInternal(err)
	}

	k1 := leftShiftOne(l, rb)
	k2 := leftShiftOne(k1, rb)

	var blocks [][]byte
	for off := 0; off < len(data); off += blockSize {
		end := off + blockSize
		if end > len(data) {
			end = len(data)
		}
		blocks = append(blocks, data[off:end])
	}

	var lastBlock []byte
	complete := len(data) > 0 && len(data)%blockSize == 0

	if len(blocks) == 0 {
		// empty message: a single padded zero block, subkey K2
		lastBlock = xorBlocks(padBlock(nil, blockSize), k2)
	} else {
		tail := blocks[len(blocks)-1]
		if complete {
			lastBlock = xorBlocks(tail, k1)
		} else {
			lastBlock = xorBlocks(padBlock(tail, blockSize), k2)
		}
		blocks = blocks[:len(blocks)-1]
	}

	chain := make([]byte, blockSize)
	for _, b := range blocks {
		in := xorBlocks(chain, b)
		out, err := encrypt(key, in)
		if err != nil {
			return nil, wrapInternal(err)
		}
		chain = out
	}

	in := xorBlocks(chain, lastBlock)
	mac, err := encrypt(key, in)
	if err != nil {
		return nil, wrapInternal(err)
	}

	return mac, nil
}

// padBlock right-pads b with a single 0x80 byte followed by zeros up to
// blockSize, per ISO/IEC 9797-1 padding method 2.
func padBlock(b []byte, blockSize int) []byte {
	out := make([]byte, blockSize)
	copy(out, b)
	out[len(b)] = 0x80

	return out
}

func xorBlocks(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range out {
		out[i] = a[i] ^ b[i]
	}

	return out
}

// leftShiftOne left-shifts in by one bit, XORing rb into the last byte
// when the most significant bit was set (NIST SP 800-38B subkey
// generation, K1/K2 derivation).
func leftShiftOne(in []byte, rb byte) []byte {
	out := make([]byte, len(in))
	msbSet := in[0]&0x80 != 0

	carry := byte(0)
	for i := len(in) - 1; i >= 0; i-- {
		out[i] = (in[i] << 1) | carry
		carry = (in[i] & 0x80) >> 7
	}

	if msbSet {
		out[len(out)-1] ^= rb
	}

	return out
}
