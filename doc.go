// Package ucsbuf assembles UTF-8 byte sequences from fixed-width Unicode
// code units into a growable chained buffer.
//
// The package exists for protocol writers that receive text as UCS-1,
// UCS-2 or UCS-4 code units (one, two or four bytes per unit) and must emit
// validated UTF-8 without re-copying already assembled output. Committed
// bytes never move: the buffer grows by adding links to a chain, so borrowed
// views of earlier output stay stable while later rows are encoded.
//
// # Architecture Overview
//
// The module is organized into a small set of packages:
//
//	ucsbuf/          Root package: chained Buffer, Views and the UCS transcoders
//	├── confstr/     Client configuration string parsing
//	├── sessions/    Connection slot reuse and reconnect churn tracking
//	└── errors/      Structured error types
//
// # Quick Start
//
// Encode code units and read the result:
//
//	buf := ucsbuf.New()
//	defer buf.Free()
//
//	view, err := buf.EncodeUCS2([]uint16{0xD83D, 0xDE00})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("% x\n", view.Bytes()) // f0 9f 98 80
//
// # Checkpoints
//
// Tell marks the current end of output; Truncate rolls back to a mark,
// keeping the memory for reuse. The pattern for speculative encoding:
//
//	mark := buf.Tell()
//	if _, err := buf.EncodeUCS2(row); err != nil {
//	    buf.Truncate(mark) // discard the partial row
//	}
//
// A failed Encode commits nothing on its own, so Truncate after an error is
// only needed to drop units encoded earlier in the same row.
//
// # Borrowed Views
//
// Encode methods return a View over the bytes they committed. A View aliases
// buffer memory and is valid until the next mutating call (Encode, Truncate,
// Clear or Free) on the same Buffer; reading it later panics. Use
// View.String to take a permanent copy.
//
// # Validation
//
// Inputs are validated before anything is written. EncodeUCS2 combines
// well-formed surrogate pairs and rejects unpaired surrogates; EncodeUCS4
// rejects surrogate code points and values beyond U+10FFFF. The returned
// error carries the offending code unit and its index. EncodeUCS1 cannot
// fail. Either every unit of a call is committed or none are.
//
// # Thread Safety
//
// Buffer and View are NOT safe for concurrent use. Confine each Buffer to
// one goroutine or synchronize access externally. Distinct Buffers are
// independent. The sessions package, which tracks state across connections,
// synchronizes internally.
//
// # Memory Model
//
// Links start at a configurable minimum (1 KiB by default) and double as the
// buffer grows. Truncate and Clear retain capacity instead of releasing it,
// so steady-state encode/reset cycles allocate nothing. Free releases
// everything and poisons the handle.
package ucsbuf
