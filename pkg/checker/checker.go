// Package checker implements the IMEI classification pipeline: input
// validation, chunked submission through a shared browser session, and
// classification of the scraped result table.
package checker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"imeicheck/pkg/imei"
	"imeicheck/pkg/logger"
)

// Session is the browser capability surface the submitter depends on.
// *browser.Manager satisfies it; tests substitute fakes.
type Session interface {
	// EnsureReady guarantees an authenticated session navigated to the
	// lookup tool, creating or recreating it as needed.
	EnsureReady(ctx context.Context) error
	// OnToolPage reports whether the session is currently on the tool page.
	OnToolPage(ctx context.Context) (bool, error)
	// OpenToolPage navigates to the tool page and waits for its input field.
	OpenToolPage(ctx context.Context) error
	// SubmitIMEIs clears the input field, enters the IMEI list, triggers
	// the check and waits for the result table to settle.
	SubmitIMEIs(ctx context.Context, imeis []string) error
	// ResultsHTML returns a snapshot of the current page markup.
	ResultsHTML(ctx context.Context) (string, error)
}

// Options tunes the batch submitter.
type Options struct {
	// ChunkSize bounds how many IMEIs go into one form submission.
	ChunkSize int
	// ChunkPause is the minimum spacing between consecutive chunk
	// submissions, to avoid hammering the target site.
	ChunkPause time.Duration
}

const DefaultChunkSize = 50

// BatchResult is the response body of a batch check.
type BatchResult struct {
	Success        bool             `json:"success"`
	Total          int              `json:"total"`
	Valid          int              `json:"valid"`
	WrongFormat    int              `json:"wrongFormat"`
	Duplicates     int              `json:"duplicates"`
	Chunks         int              `json:"chunks"`
	Summary        map[Category]int `json:"summary"`
	Results        []CheckResult    `json:"results"`
	ProcessingTime string           `json:"processingTime"`
}

// Service submits validated IMEIs through the shared session in chunks
// and classifies the scraped results. Page interaction is serialized with
// a mutex so concurrent requests cannot interleave form operations.
type Service struct {
	session Session
	opts    Options
	limiter *rate.Limiter

	mu sync.Mutex // serializes chunk submissions against the session
}

// NewService creates a batch submitter bound to a session.
func NewService(session Session, opts Options) *Service {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	var limiter *rate.Limiter
	if opts.ChunkPause > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.ChunkPause), 1)
	}
	return &Service{
		session: session,
		opts:    opts,
		limiter: limiter,
	}
}

// CheckOne classifies a single raw IMEI. A wrong-format entry is a result,
// not an error; session and scrape failures are errors.
func (s *Service) CheckOne(ctx context.Context, raw string) (*CheckResult, error) {
	if raw == "" {
		return nil, ErrMissingIMEI
	}

	part := imei.Validate([]string{raw})
	if len(part.Valid) == 0 {
		r := WrongFormatResult(raw)
		return &r, nil
	}

	if err := s.session.EnsureReady(ctx); err != nil {
		return nil, fmt.Errorf("session unavailable: %w", err)
	}

	results, err := s.processChunk(ctx, part.Valid)
	if err != nil {
		return nil, fmt.Errorf("check failed: %w", err)
	}
	return &results[0], nil
}

// CheckBatch validates raw entries, submits the valid ones in chunks and
// returns one result per input entry. A failing chunk degrades to error
// results for its own IMEIs only; later chunks still run.
func (s *Service) CheckBatch(ctx context.Context, records []string) (*BatchResult, error) {
	start := time.Now()

	part := imei.Validate(records)
	if len(part.Valid) == 0 {
		return nil, ErrNoValidIMEIs
	}

	if err := s.session.EnsureReady(ctx); err != nil {
		return nil, fmt.Errorf("session unavailable: %w", err)
	}

	chunks := chunkStrings(part.Valid, s.opts.ChunkSize)
	results := make([]CheckResult, 0, part.Total())

	for i, chunk := range chunks {
		if i > 0 && s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		logger.Debug("processing chunk",
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("size", len(chunk)))

		chunkResults, err := s.processChunk(ctx, chunk)
		if err != nil {
			logger.Error("chunk processing failed",
				zap.Int("chunk", i+1),
				zap.Error(err))
			for _, id := range chunk {
				results = append(results, ErrorResult(id))
			}
			continue
		}
		results = append(results, chunkResults...)
	}

	for _, raw := range part.WrongFormat {
		results = append(results, WrongFormatResult(raw))
	}
	for _, raw := range part.Duplicates {
		results = append(results, DuplicateResult(raw))
	}

	return &BatchResult{
		Success:        true,
		Total:          len(records),
		Valid:          len(part.Valid),
		WrongFormat:    len(part.WrongFormat),
		Duplicates:     len(part.Duplicates),
		Chunks:         len(chunks),
		Summary:        summarize(results),
		Results:        results,
		ProcessingTime: time.Since(start).Round(time.Millisecond).String(),
	}, nil
}

// processChunk runs one form submission and classifies every IMEI of the
// chunk against the scraped rows. Holds the session for its full duration.
func (s *Service) processChunk(ctx context.Context, chunk []string) ([]CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	onTool, err := s.session.OnToolPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("page state check failed: %w", err)
	}
	if !onTool {
		if err := s.session.OpenToolPage(ctx); err != nil {
			return nil, fmt.Errorf("tool page navigation failed: %w", err)
		}
	}

	if err := s.session.SubmitIMEIs(ctx, chunk); err != nil {
		return nil, fmt.Errorf("submission failed: %w", err)
	}

	html, err := s.session.ResultsHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("result scrape failed: %w", err)
	}

	rows, err := ParseRows(html)
	if err != nil {
		return nil, fmt.Errorf("result parse failed: %w", err)
	}

	now := time.Now()
	results := make([]CheckResult, 0, len(chunk))
	for _, id := range chunk {
		results = append(results, Classify(id, rows, now))
	}
	return results, nil
}

func chunkStrings(items []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// summarize counts results per category, reporting zero for categories
// that did not occur so the summary shape is stable.
func summarize(results []CheckResult) map[Category]int {
	summary := map[Category]int{
		CategoryNotExist:     0,
		CategoryNotActive:    0,
		CategoryActive2Days:  0,
		CategoryActive3To15:  0,
		CategoryActiveMore15: 0,
		CategoryError:        0,
		CategoryWrongFormat:  0,
		CategoryDuplicate:    0,
	}
	for _, r := range results {
		summary[r.Category]++
	}
	return summary
}
