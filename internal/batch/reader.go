package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/rs/zerolog"
)

// InputRecord is one line of the JSONL input file. Error is set when the
// line did not parse, so callers can report the line number.
type InputRecord struct {
	Request    models.ExcuseRequest
	LineNumber int
	Error      error
}

type Reader struct {
	input  io.Reader
	logger *zerolog.Logger
}

func NewReader(input io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		input:  input,
		logger: logger,
	}
}

// ReadAll streams records from the input. Blank lines are skipped, line
// numbers count every physical line.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.input)
		lineNumber := 0

		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}
			if err := json.Unmarshal([]byte(line), &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("failed to read input")
		}
	}()

	return out
}
