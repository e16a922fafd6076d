package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ethicswatch/ethicswatch/internal/model"
	"github.com/ethicswatch/ethicswatch/internal/watchdog"
)

// Assessor runs one misinformation assessment.
type Assessor interface {
	Run(ctx context.Context, text string, opts watchdog.Options) (*model.WatchReport, error)
}

// AssessJob assesses a single text
type AssessJob struct {
	Line     int
	Text     string
	TopK     int
	Assessor Assessor
	Limiter  *Limiter
	Backend  string
}

// Execute runs the assessment for the job's text
func (j *AssessJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Backend); err != nil {
			return &AssessResult{Line: j.Line, Text: j.Text, Error: err}
		}
	}

	report, err := j.Assessor.Run(ctx, j.Text, watchdog.Options{TopK: j.TopK})
	return &AssessResult{
		Line:   j.Line,
		Text:   j.Text,
		Report: report,
		Error:  err,
	}
}

// AssessResult is the outcome of one batch assessment
type AssessResult struct {
	Line   int
	Text   string
	Report *model.WatchReport
	Error  error
}

// Err returns the job error, if any
func (r *AssessResult) Err() error {
	return r.Error
}

// BatchProcessor assesses multiple texts concurrently under a shared
// rate limit.
type BatchProcessor struct {
	assessor    Assessor
	concurrency int
	limiter     *Limiter
	backend     string
	topK        int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(assessor Assessor, cfg model.BatchConfig, backend string, topK int) *BatchProcessor {
	return &BatchProcessor{
		assessor:    assessor,
		concurrency: cfg.Workers,
		limiter:     NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		backend:     backend,
		topK:        topK,
	}
}

// ProcessTexts assesses the texts concurrently. Results come back in
// completion order; callers that need input order sort by Line.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*AssessResult {
	if len(texts) == 0 {
		return []*AssessResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	go func() {
		<-ctx.Done()
		pool.Shutdown()
	}()

	for i, text := range texts {
		pool.Submit(&AssessJob{
			Line:     i + 1,
			Text:     text,
			TopK:     b.topK,
			Assessor: b.assessor,
			Limiter:  b.limiter,
			Backend:  b.backend,
		})
	}

	results := pool.Wait()

	assessResults := make([]*AssessResult, len(results))
	for i, result := range results {
		assessResults[i] = result.(*AssessResult)
	}

	return assessResults
}

// ProcessFile reads texts from a file (one per line) and assesses them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AssessResult, error) {
	texts, err := ReadTextsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read texts: %w", err)
	}

	return b.ProcessTexts(ctx, texts), nil
}

// ReadTextsFromFile reads texts from a file, one per line. Empty lines
// and #-comments are skipped; duplicate lines are assessed once.
func ReadTextsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			texts = append(texts, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return texts, nil
}
