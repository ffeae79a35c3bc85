package summarize

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"smartdoc-backend/internal/textsplit"
)

// defaultParallelism bounds concurrent model calls during chunk fan-out.
const defaultParallelism = 4

var (
	engineOnce sync.Once
	engine     *Engine
)

// Engine orchestrates chunked summarization over a single shared provider.
type Engine struct {
	provider    Summarizer
	chunkSize   int
	parallelism int
}

// NewEngine builds an Engine around the given provider.
func NewEngine(provider Summarizer, chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = textsplit.DefaultChunkSize
	}
	return &Engine{
		provider:    provider,
		chunkSize:   chunkSize,
		parallelism: defaultParallelism,
	}
}

// InitEngine initializes the process-wide engine exactly once and returns it.
// Later calls return the already-initialized instance regardless of arguments.
func InitEngine(provider Summarizer, chunkSize int) *Engine {
	engineOnce.Do(func() {
		engine = NewEngine(provider, chunkSize)
	})
	return engine
}

// ChunkSize exposes the configured chunk size.
func (e *Engine) ChunkSize() int { return e.chunkSize }

// Summarize condenses text with a single model call. Whitespace-only input
// short-circuits to NoContentResult without touching the provider. Provider
// failures come back as *ModelError.
func (e *Engine) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NoContentResult, nil
	}

	out, err := e.provider.Summarize(ctx, text)
	if err != nil {
		return "", &ModelError{Provider: providerName(e.provider), Err: err}
	}
	return out, nil
}

// SummarizeLong splits text into chunks, summarizes each independently, and
// joins the partial summaries with newlines in chunk order. Input that fits a
// single chunk behaves exactly like Summarize. Chunk summaries are computed
// with bounded parallelism but always reassembled in original order.
func (e *Engine) SummarizeLong(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return NoContentResult, nil
	}

	chunks := textsplit.Chunks(text, e.chunkSize)
	if len(chunks) <= 1 {
		return e.Summarize(ctx, text)
	}

	partials := make([]string, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, chunk := range chunks {
		g.Go(func() error {
			out, err := e.provider.Summarize(gctx, chunk)
			if err != nil {
				return &ModelError{Provider: providerName(e.provider), Err: err}
			}
			partials[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(partials, "\n"), nil
}

type named interface {
	Name() string
}

func providerName(s Summarizer) string {
	if n, ok := s.(named); ok {
		return n.Name()
	}
	return "unknown"
}
