// Package sse writes Server-Sent-Event frames: one data frame per chunk,
// terminated by a single [DONE] sentinel.
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrStreamingUnsupported is returned when the ResponseWriter cannot flush.
var ErrStreamingUnsupported = errors.New("response writer does not support streaming")

// Emitter frames chunks onto an HTTP response. Not safe for concurrent use;
// one emitter serves one response. After Close (or a failed write) all
// further writes are no-ops.
type Emitter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

// New sets the event-stream headers and returns an emitter for w.
func New(w http.ResponseWriter) (*Emitter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	return &Emitter{w: w, flusher: flusher}, nil
}

// Send writes one data frame carrying v as JSON.
func (e *Emitter) Send(v any) error {
	if e.closed {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	return e.write("data: " + string(data) + "\n\n")
}

// Chunk writes one content frame.
func (e *Emitter) Chunk(content string) error {
	return e.Send(map[string]string{"content": content})
}

// SendError writes an error frame. The stream still needs Close afterwards.
func (e *Emitter) SendError(msg string) error {
	return e.Send(map[string]string{"error": msg})
}

// Close writes the [DONE] sentinel exactly once.
func (e *Emitter) Close() {
	if e.closed {
		return
	}
	_ = e.write("data: [DONE]\n\n")
	e.closed = true
}

func (e *Emitter) write(frame string) error {
	if e.closed {
		return nil
	}
	if _, err := fmt.Fprint(e.w, frame); err != nil {
		// Transport gone; swallow subsequent writes.
		e.closed = true
		return err
	}
	e.flusher.Flush()
	return nil
}
