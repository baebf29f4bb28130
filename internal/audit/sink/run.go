// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/retr0h/osaudit/internal/audit"
)

// Run opens the sink and writes every record received on records until the
// channel is closed or ctx is cancelled. A failed write is logged and
// counted, and does not stop the loop. The sink is closed on return.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	s Sink,
	records <-chan *audit.Snapshot,
) (*Result, error) {
	if err := s.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening sink: %w", err)
	}

	defer func() {
		if closeErr := s.Close(ctx); closeErr != nil {
			logger.Error("closing sink", slog.String("error", closeErr.Error()))
		}
	}()

	result := &Result{}

	for {
		select {
		case <-ctx.Done():
			return result, nil
		case snap, ok := <-records:
			if !ok {
				return result, nil
			}

			if err := s.Write(ctx, snap); err != nil {
				result.Failed++
				logger.Error(
					"writing audit record",
					slog.String("category", string(snap.Category())),
					slog.String("error", err.Error()),
				)

				continue
			}

			result.Written++
		}
	}
}
