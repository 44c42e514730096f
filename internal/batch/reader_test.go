package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

const validLine = `{"category":"running-late","tone":"formal","seriousness":3,"recipient_name":"Ms. Harper","sender_name":"Alex","eta_when":"30 minutes"}`

func TestReader_InvalidFile(t *testing.T) {
	file := strings.NewReader("invalid file content")

	reader := NewReader(file, newTestLogger())
	ctx := context.Background()
	ch := reader.ReadAll(ctx)

	for record := range ch {
		if record.Error == nil {
			t.Errorf("expected parse error for invalid JSON, but got none")
		}
	}
}

func TestReader_ValidFile(t *testing.T) {
	inputFile := validLine + "\n" + validLine

	file := strings.NewReader(inputFile)

	ctx := context.Background()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for record := range ch {
		count += 1
		if record.Error != nil {
			t.Errorf("Error reading the excuse request record. Got: %s", record.Error)
		}
		if record.Request.Category != "running-late" {
			t.Errorf("Expected category 'running-late', got '%s'", record.Request.Category)
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 excuse request records. Got: %d", count)
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	// Large input with many lines
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, validLine)
	}
	file := strings.NewReader(strings.Join(lines, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for range ch {
		count++
		if count == 5 {
			cancel() // Cancel after 5 records
			break
		}
	}

	// Should have stopped early
	if count >= 100 {
		t.Errorf("expected early cancellation, but read all records")
	}
}

func TestReader_LineNumbers(t *testing.T) {
	inputFile := validLine + "\n\n{\"invalid json}\n" + validLine

	file := strings.NewReader(inputFile)
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(context.Background())
	records := []InputRecord{}
	for record := range ch {
		records = append(records, record)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records (blank line skipped), got %d", len(records))
	}

	// Check line numbers
	if records[0].LineNumber != 1 {
		t.Errorf("first record should be line 1, got %d", records[0].LineNumber)
	}
	if records[1].LineNumber != 3 {
		t.Errorf("error record should be line 3, got %d", records[1].LineNumber)
	}
	if records[1].Error == nil {
		t.Error("expected parse error for line 3")
	}
	if records[2].LineNumber != 4 {
		t.Errorf("third record should be line 4, got %d", records[2].LineNumber)
	}
}
