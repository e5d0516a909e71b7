package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Serve reads newline-delimited JSON requests from r and writes one JSON
// response per line to w. It returns when r is exhausted or ctx is
// canceled. Malformed lines produce an error_response and the loop
// continues.
func (h *Handler) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		var resp Response
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			h.logger.Warn("malformed request line", slog.Any("error", err))
			resp = errorResponse("", fmt.Sprintf("malformed request: %v", err))
		} else {
			resp = h.Handle(ctx, req)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}
