package chat

import (
	"bufio"
	"bytes"
	"io"
	"net/http"
)

// sseReader reads server-sent events off an HTTP response body.
type sseReader struct {
	reader *bufio.Reader
	resp   *http.Response
}

func newSSEReader(resp *http.Response) *sseReader {
	return &sseReader{
		reader: bufio.NewReader(resp.Body),
		resp:   resp,
	}
}

// readEvent returns the next event's data payload. done is true once
// the stream has ended.
func (r *sseReader) readEvent() ([]byte, bool, error) {
	var data []byte

	for {
		line, err := r.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// A server that closes mid-event still delivers the
				// pending payload.
				if d := dataPayload(bytes.TrimSpace(line)); d != nil {
					return d, false, nil
				}
				if data != nil {
					return data, false, nil
				}
				return nil, true, nil
			}
			return nil, false, err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			// Empty line marks end of event.
			if data != nil {
				return data, false, nil
			}
			continue
		}

		if d := dataPayload(line); d != nil {
			data = d
		}
	}
}

func (r *sseReader) close() {
	r.resp.Body.Close()
}

// dataPayload extracts the payload of a data: line, or nil for any
// other field.
func dataPayload(line []byte) []byte {
	rest, ok := bytes.CutPrefix(line, []byte("data:"))
	if !ok {
		return nil
	}
	return bytes.TrimSpace(rest)
}
