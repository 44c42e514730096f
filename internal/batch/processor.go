package batch

import (
	"context"
	"sync"

	"github.com/excusegen/excuse-agent/internal/config"
	"github.com/excusegen/excuse-agent/internal/excuse"
	"github.com/excusegen/excuse-agent/internal/models"
	"github.com/rs/zerolog"
)

// Processor drafts excuses for a batch of records with a bounded worker pool.
type Processor struct {
	generator    *excuse.Generator
	promptConfig *config.PromptConfig
	workers      int
	logger       *zerolog.Logger
}

func NewProcessor(generator *excuse.Generator, promptConfig *config.PromptConfig, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		generator:    generator,
		promptConfig: promptConfig,
		workers:      workers,
		logger:       logger,
	}
}

func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan OutputRecord {
	jobs := make(chan InputRecord)
	results := make(chan OutputRecord)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				result := p.process(ctx, record)
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) process(ctx context.Context, record InputRecord) OutputRecord {
	result := OutputRecord{
		LineNumber: record.LineNumber,
		Request:    record.Request,
	}

	if record.Error != nil {
		result.Response = models.FailureResponse(record.Error.Error())
		return result
	}

	if err := record.Request.Validate(p.promptConfig.Categories, p.promptConfig.Tones); err != nil {
		p.logger.Warn().
			Int("line", record.LineNumber).
			Err(err).
			Msg("invalid batch record")
		result.Response = models.FailureResponse(err.Error())
		return result
	}

	result.Response = p.generator.Generate(ctx, record.Request)
	return result
}
