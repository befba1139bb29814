// Package amf renders reasoning-model answer streams to ANSI for
// terminal display.
//
// Model output mixes Markdown, TeX math and agent tag regions such as
// <think> and <search>, and it arrives token by token, so the buffer is
// incomplete at every intermediate step. This package re-parses the
// full buffer on every update with pure, total functions: any input
// yields a valid result, unterminated constructs degrade to consuming
// the rest of the input or to an in-progress segment, and re-parsing an
// extended buffer reproduces every completed segment byte-identically.
// Stability under growth comes from determinism, not incremental state.
//
// Core properties:
//   - Total parsing, no error paths for malformed or truncated input
//   - Deterministic re-parse of the whole buffer on every update
//   - Completed segments never flicker while the tail refines
//   - Failure-safe math: engine errors fall back to the TeX source
//   - Theme-driven styling via ANSI prefixes
//
// Example:
//
//	reader := strings.NewReader("<think>check units</think>The force is $F = ma$.\n")
//	err := amf.Render(amf.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  amf.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// For live output, LiveRenderer accumulates stream chunks and repaints
// the terminal region in place after each update.
package amf
