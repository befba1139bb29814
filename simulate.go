package amf

import (
	"bufio"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// SimulateRequest configures Simulate.
type SimulateRequest struct {
	Reader    io.Reader
	Writer    io.Writer
	Width     int
	Theme     Theme
	ChunkSize int
	Delay     time.Duration
	MaxRows   int
	Options   []RenderOption
}

// Simulate replays static input as if it were streaming: runes arrive
// in fixed-size chunks and the live renderer re-renders the grown
// buffer after each one. Intended for demoing inference pacing over a
// saved answer.
func Simulate(req SimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("simulate: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("simulate: writer is nil")
	}
	if req.ChunkSize <= 0 {
		return fmt.Errorf("simulate: chunk size must be > 0")
	}
	live := NewLiveRenderer(req.Writer, req.Theme, req.Width, req.Options...)
	live.SetMaxRows(req.MaxRows)
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	defer readerPool.Put(reader)
	chunk := make([]rune, 0, req.ChunkSize)
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		if req.Delay > 0 {
			time.Sleep(req.Delay)
		}
		live.Append(string(chunk))
		chunk = chunk[:0]
		return live.Repaint()
	}
	for {
		r, size, err := reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("simulate: read: %w", err)
		}
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if isControlRune(r) {
			continue
		}
		chunk = append(chunk, r)
		if len(chunk) >= req.ChunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	return live.Finish()
}
