package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// InferRequest describes one inference call.
type InferRequest struct {
	// Query is the user's question.
	Query string

	// Model selects a backend model by identifier.
	Model string

	// Mode selects the reasoning strategy. Empty means ModeDirect.
	Mode string

	// Images holds paths of image files attached to the query.
	Images []string
}

// Infer runs one inference and yields the stream's events in order.
//
// The sequence ends after a done or error event, on context
// cancellation, or when the connection drops. Iteration owns the
// connection: breaking out of the loop closes it.
//
//	for ev, err := range client.Infer(ctx, req) {
//		if err != nil {
//			return err
//		}
//		if ev.Type == chat.EventToken {
//			live.Append(ev.Content)
//		}
//	}
func (c *Client) Infer(ctx context.Context, req *InferRequest) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if req == nil {
			yield(Event{}, fmt.Errorf("infer: request is nil"))
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			yield(Event{}, fmt.Errorf("infer: query is empty"))
			return
		}
		if req.Model == "" {
			yield(Event{}, fmt.Errorf("infer: model is empty"))
			return
		}
		mode := req.Mode
		if mode == "" {
			mode = ModeDirect
		}
		if !ValidMode(mode) {
			yield(Event{}, fmt.Errorf("infer: unknown mode %q", mode))
			return
		}

		body, contentType, err := inferForm(req.Query, req.Model, mode, req.Images)
		if err != nil {
			yield(Event{}, err)
			return
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/infer", body)
		if err != nil {
			yield(Event{}, fmt.Errorf("infer: create request: %w", err))
			return
		}
		httpReq.Header.Set("Content-Type", contentType)
		httpReq.Header.Set("Accept", "text/event-stream")

		resp, err := c.httpc.Do(httpReq)
		if err != nil {
			yield(Event{}, fmt.Errorf("infer: do request: %w", err))
			return
		}
		if resp.StatusCode != http.StatusOK {
			defer resp.Body.Close()
			yield(Event{}, statusError(resp))
			return
		}

		sse := newSSEReader(resp)
		defer sse.close()

		for {
			data, done, err := sse.readEvent()
			if err != nil {
				if ctx.Err() != nil {
					err = ctx.Err()
				}
				yield(Event{}, fmt.Errorf("infer: read stream: %w", err))
				return
			}
			if done {
				return
			}

			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				// Frames that do not decode are dropped rather than
				// tearing down the stream.
				continue
			}
			if !yield(ev, nil) {
				return
			}
			if ev.Type == EventDone || ev.Type == EventError {
				return
			}
		}
	}
}

// inferForm builds the multipart body for an inference request.
func inferForm(query, model, mode string, images []string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [...][2]string{
		{"query", query},
		{"model", model},
		{"mode", mode},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("infer: write field %s: %w", f[0], err)
		}
	}

	for _, path := range images {
		if err := attachFile(w, path); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("infer: close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// attachFile adds one file to the files form field.
func attachFile(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("infer: open attachment: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("infer: create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("infer: copy attachment %s: %w", path, err)
	}
	return nil
}
