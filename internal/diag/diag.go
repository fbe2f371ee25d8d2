// Package diag provides the key-block parser and pipeline with an
// optional structural tracer. It never receives key material, derived
// subkeys, or the recovered key: only public header fields and the
// names of the branches taken.
package diag

import (
	"io"

	"github.com/rs/zerolog"
)

// logger is silent until Enable is called; a library must not force
// global log output on its importers.
var logger = zerolog.New(io.Discard)

// Enable routes structural trace events to w at debug level.
func Enable(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// Disable silences the tracer again.
func Disable() {
	logger = zerolog.New(io.Discard)
}

// Header logs the version-dispatch decision for an import.
func Header(version byte, optBlocks int, keyUsage string) {
	logger.Debug().
		Str("event", "header_parsed").
		Str("version", string(version)).
		Int("opt_blocks", optBlocks).
		Str("key_usage", keyUsage).
		Msg("parsed key block header")
}

// Binding logs which binding method and MAC size were selected.
func Binding(version byte, method string, macBytes int) {
	logger.Debug().
		Str("event", "binding_selected").
		Str("version", string(version)).
		Str("method", method).
		Int("mac_bytes", macBytes).
		Msg("selected binding method")
}

// Verify logs the outcome of authenticator verification without ever
// including the authenticator or any key material.
func Verify(version byte, ok bool) {
	logger.Debug().
		Str("event", "verify").
		Str("version", string(version)).
		Bool("ok", ok).
		Msg("authenticator verification")
}
