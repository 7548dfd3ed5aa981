package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// ServeStdio runs a newline-delimited JSON request/response loop: one request
// per line on in, one response per line on out. Returns when in is exhausted
// or ctx is done.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	enc := json.NewEncoder(out)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			log.Warn().Err(err).Msg("unparsable stdio request")
			if encErr := enc.Encode(errorResponse(nil, CodeParseError, "Parse error", err.Error())); encErr != nil {
				return fmt.Errorf("write response: %w", encErr)
			}
			continue
		}

		if err := enc.Encode(s.Handle(ctx, req)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}
