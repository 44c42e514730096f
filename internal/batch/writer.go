package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/rs/zerolog"
)

// OutputRecord pairs an input line with its generated draft.
type OutputRecord struct {
	LineNumber int                   `json:"line"`
	Request    models.ExcuseRequest  `json:"request"`
	Response   models.ExcuseResponse `json:"response"`
}

type Writer struct {
	output  io.Writer
	format  string
	encoder *json.Encoder
	logger  *zerolog.Logger

	total     int
	succeeded int
	failed    int
}

func NewWriter(output io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case "jsonl", "summary":
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		output:  output,
		format:  format,
		encoder: json.NewEncoder(output),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(result OutputRecord) error {
	w.total++
	if result.Response.Success {
		w.succeeded++
	} else {
		w.failed++
	}

	if w.format == "summary" {
		return nil
	}

	return w.encoder.Encode(result)
}

// Close flushes the summary line in summary mode.
func (w *Writer) Close() error {
	if w.format != "summary" {
		return nil
	}

	_, err := fmt.Fprintf(w.output, "total=%d succeeded=%d failed=%d\n", w.total, w.succeeded, w.failed)
	return err
}
