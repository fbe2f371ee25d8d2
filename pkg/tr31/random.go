package tr31

import (
	"fmt"
	"io"
)

// EntropySource is the opaque hook for random bytes, satisfied by
// crypto/rand.Reader. The public import path never needs randomness;
// this exists for the internal round-trip test helper, which has to
// generate payload padding to build a key block to import (spec.md
// §9: "random-number generation beyond exposing an opaque entropy
// hook" is a non-goal, not an omission).
type EntropySource interface {
	Read(p []byte) (n int, err error)
}

func readFull(src EntropySource, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", errInternalRandomFailure, err)
	}

	return buf, nil
}
