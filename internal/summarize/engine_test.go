package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
)

type fakeProvider struct {
	calls int64
	fail  bool
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(ctx context.Context, text string) (string, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.fail {
		return "", errors.New("backend exploded")
	}
	head := ""
	if r := []rune(text); len(r) > 0 {
		head = string(r[0])
	}
	return fmt.Sprintf("sum(%s,%d)", head, len([]rune(text))), nil
}

func TestSummarizeWhitespaceShortCircuits(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	eng := NewEngine(provider, 500)

	for _, in := range []string{"", "   ", "\n\t  \n"} {
		got, err := eng.Summarize(context.Background(), in)
		if err != nil {
			t.Fatalf("Summarize(%q): %v", in, err)
		}
		if got != NoContentResult {
			t.Fatalf("Summarize(%q) = %q, want no-content result", in, got)
		}
	}
	if n := atomic.LoadInt64(&provider.calls); n != 0 {
		t.Fatalf("expected zero provider calls, got %d", n)
	}
}

func TestSummarizeLongWhitespaceShortCircuits(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	eng := NewEngine(provider, 500)

	// Whitespace spanning several chunks, e.g. a scanned PDF with a blank
	// text layer. Must short-circuit before any fan-out.
	got, err := eng.SummarizeLong(context.Background(), strings.Repeat(" ", 1200))
	if err != nil {
		t.Fatalf("SummarizeLong: %v", err)
	}
	if got != NoContentResult {
		t.Fatalf("SummarizeLong(whitespace) = %q, want no-content result", got)
	}
	if n := atomic.LoadInt64(&provider.calls); n != 0 {
		t.Fatalf("expected zero provider calls, got %d", n)
	}
}

func TestSummarizeLongShortInputEqualsSummarize(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&fakeProvider{}, 500)
	in := strings.Repeat("a", 400)

	single, err := eng.Summarize(context.Background(), in)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	long, err := eng.SummarizeLong(context.Background(), in)
	if err != nil {
		t.Fatalf("SummarizeLong: %v", err)
	}
	if single != long {
		t.Fatalf("expected identical output for short input: %q vs %q", single, long)
	}
}

func TestSummarizeLongJoinsChunksInOrder(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&fakeProvider{}, 500)

	// 3600 chars -> 7 chunks of 500 + 1 of 100, each block a distinct letter
	// so reassembly order is observable.
	letters := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var sb strings.Builder
	for _, l := range letters[:7] {
		sb.WriteString(strings.Repeat(l, 500))
	}
	sb.WriteString(strings.Repeat("h", 100))

	got, err := eng.SummarizeLong(context.Background(), sb.String())
	if err != nil {
		t.Fatalf("SummarizeLong: %v", err)
	}
	parts := strings.Split(got, "\n")
	if len(parts) != 8 {
		t.Fatalf("expected 8 partial summaries, got %d", len(parts))
	}
	for i := 0; i < 7; i++ {
		want := fmt.Sprintf("sum(%s,500)", letters[i])
		if parts[i] != want {
			t.Fatalf("partial %d = %q, want %q", i, parts[i], want)
		}
	}
	if parts[7] != "sum(h,100)" {
		t.Fatalf("final partial = %q, want sum(h,100)", parts[7])
	}
}

func TestSummarizeConvertsFailureToModelError(t *testing.T) {
	t.Parallel()

	eng := NewEngine(&fakeProvider{fail: true}, 500)

	_, err := eng.Summarize(context.Background(), "some text")
	var me *ModelError
	if !errors.As(err, &me) {
		t.Fatalf("expected *ModelError, got %v", err)
	}
	if me.Provider != "fake" {
		t.Fatalf("expected provider name fake, got %s", me.Provider)
	}

	_, err = eng.SummarizeLong(context.Background(), strings.Repeat("y", 1200))
	if !errors.As(err, &me) {
		t.Fatalf("expected *ModelError from long path, got %v", err)
	}
}

func TestInitEngineIsIdempotent(t *testing.T) {
	first := InitEngine(&fakeProvider{}, 100)
	second := InitEngine(&fakeProvider{}, 999)
	if first != second {
		t.Fatal("expected InitEngine to return the same instance")
	}
	if second.ChunkSize() != 100 {
		t.Fatalf("expected first initialization to win, got chunk size %d", second.ChunkSize())
	}
}
