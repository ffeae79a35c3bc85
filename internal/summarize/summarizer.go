// Package summarize wraps a pretrained summarization model behind a small
// orchestration layer that handles chunked input.
package summarize

import (
	"context"
	"fmt"
)

// NoContentResult is returned for empty or whitespace-only documents. The
// model is never invoked in that case.
const NoContentResult = "No text found in the document to summarize."

// Summarizer produces a condensed version of the given text. Implementations
// must be safe for concurrent use; the process holds a single instance.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Params bounds the target summary length. Decoding is non-sampling, so the
// same input and params always produce the same output.
type Params struct {
	MinLength int
	MaxLength int
}

// ModelError reports a failure of the underlying model backend. It is a typed
// error so callers can decide how to render it instead of receiving an error
// string disguised as a summary.
type ModelError struct {
	Provider string
	Err      error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("summarization model (%s): %v", e.Provider, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
