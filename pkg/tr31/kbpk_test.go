package tr31

import (
	"bytes"
	"testing"
)

func TestDeriveVariantKeys(t *testing.T) {
	t.Parallel()

	kbpk := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}

	kbek, kbak := deriveVariantKeys(kbpk)

	for i, b := range kbpk {
		if kbek[i] != b^kbekVariantXOR {
			t.Fatalf("kbek[%d] = %#x, want %#x", i, kbek[i], b^kbekVariantXOR)
		}
		if kbak[i] != b^kbakVariantXOR {
			t.Fatalf("kbak[%d] = %#x, want %#x", i, kbak[i], b^kbakVariantXOR)
		}
	}
}

func TestDeriveVariantKeysDiffer(t *testing.T) {
	t.Parallel()

	kbpk := bytes.Repeat([]byte{0x5A}, 16)
	kbek, kbak := deriveVariantKeys(kbpk)

	if bytes.Equal(kbek, kbak) {
		t.Fatal("kbek and kbak must differ")
	}
}

func TestDeriveTDESDerivationKeysLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 24} {
		n := n
		kbpk := bytes.Repeat([]byte{0x01}, n)

		kbek, kbak, err := deriveTDESDerivationKeys(kbpk)
		if err != nil {
			t.Fatalf("deriveTDESDerivationKeys(%d): %v", n, err)
		}
		if len(kbek) != n || len(kbak) != n {
			t.Fatalf("derived key lengths = %d/%d, want %d", len(kbek), len(kbak), n)
		}
		if bytes.Equal(kbek, kbak) {
			t.Fatalf("kbek and kbak must differ for len %d", n)
		}
	}
}

func TestDeriveTDESDerivationKeysRejectsBadLength(t *testing.T) {
	t.Parallel()

	_, _, err := deriveTDESDerivationKeys(make([]byte, 20))
	if err != ErrUnsupportedKBPKLength {
		t.Fatalf("err = %v, want ErrUnsupportedKBPKLength", err)
	}
}

func TestDeriveAESDerivationKeysLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 24, 32} {
		n := n
		kbpk := bytes.Repeat([]byte{0x02}, n)

		kbek, kbak, err := deriveAESDerivationKeys(kbpk)
		if err != nil {
			t.Fatalf("deriveAESDerivationKeys(%d): %v", n, err)
		}
		if len(kbek) != n || len(kbak) != n {
			t.Fatalf("derived key lengths = %d/%d, want %d", len(kbek), len(kbak), n)
		}
	}
}

func TestDeriveAESDerivationKeysDeterministic(t *testing.T) {
	t.Parallel()

	kbpk := bytes.Repeat([]byte{0x03}, 32)

	kbek1, kbak1, err := deriveAESDerivationKeys(kbpk)
	if err != nil {
		t.Fatalf("deriveAESDerivationKeys: %v", err)
	}
	kbek2, kbak2, err := deriveAESDerivationKeys(kbpk)
	if err != nil {
		t.Fatalf("deriveAESDerivationKeys: %v", err)
	}

	if !bytes.Equal(kbek1, kbek2) || !bytes.Equal(kbak1, kbak2) {
		t.Fatal("AES derivation must be deterministic")
	}
}

func TestTDESKCVLength(t *testing.T) {
	t.Parallel()

	kcv, err := tdesKCV(bytes.Repeat([]byte{0x04}, 16))
	if err != nil {
		t.Fatalf("tdesKCV: %v", err)
	}
	if len(kcv) != 3 {
		t.Fatalf("len(kcv) = %d, want 3", len(kcv))
	}
}

func TestAESKCVLength(t *testing.T) {
	t.Parallel()

	kcv, err := aesKCV(bytes.Repeat([]byte{0x05}, 16))
	if err != nil {
		t.Fatalf("aesKCV: %v", err)
	}
	if len(kcv) != 5 {
		t.Fatalf("len(kcv) = %d, want 5", len(kcv))
	}
}
