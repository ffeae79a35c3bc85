package summaries

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"smartdoc-backend/internal/summarize"
)

type fakeProvider struct {
	calls atomic.Int64
	fail  bool
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Summarize(ctx context.Context, text string) (string, error) {
	p.calls.Add(1)
	if p.fail {
		return "", errors.New("model unavailable")
	}
	return "summary", nil
}

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, s Summary) error { return errors.New("db down") }
func (failingRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Summary, error) {
	return nil, errors.New("db down")
}
func (failingRepo) GetByID(ctx context.Context, userId, summaryID string) (Summary, error) {
	return Summary{}, errors.New("db down")
}

func newTestService(provider summarize.Summarizer, repo SummariesRepo) *Service {
	return &Service{
		Repo:   repo,
		Engine: summarize.NewEngine(provider, 500),
	}
}

func TestSummarizeUploadRejectsUnsupportedFormat(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider, NewMemoryRepo())

	_, err := svc.SummarizeUpload(context.Background(), "user-1", "image.png", strings.NewReader("data"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if n := provider.calls.Load(); n != 0 {
		t.Fatalf("provider called %d times for rejected upload", n)
	}
}

func TestSummarizeUploadPersistsSummary(t *testing.T) {
	provider := &fakeProvider{}
	repo := NewMemoryRepo()
	svc := newTestService(provider, repo)

	res, err := svc.SummarizeUpload(context.Background(), "user-1", "notes.txt", strings.NewReader("some meaningful text"))
	if err != nil {
		t.Fatalf("SummarizeUpload: %v", err)
	}
	if !res.Saved {
		t.Fatalf("expected summary to be saved")
	}
	if res.Summary.Summary != "summary" {
		t.Fatalf("unexpected summary %q", res.Summary.Summary)
	}

	stored, err := repo.GetByID(context.Background(), "user-1", res.Summary.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FileName != "notes.txt" {
		t.Fatalf("unexpected stored file name %q", stored.FileName)
	}
}

func TestSummarizeUploadEmptyTextNotPersisted(t *testing.T) {
	provider := &fakeProvider{}
	repo := NewMemoryRepo()
	svc := newTestService(provider, repo)

	res, err := svc.SummarizeUpload(context.Background(), "user-1", "empty.txt", strings.NewReader("   \n\t  "))
	if err != nil {
		t.Fatalf("SummarizeUpload: %v", err)
	}
	if res.Saved {
		t.Fatalf("no-content result must not be saved")
	}
	if res.Notice != summarize.NoContentResult {
		t.Fatalf("expected no-content notice, got %q", res.Notice)
	}
	if n := provider.calls.Load(); n != 0 {
		t.Fatalf("provider called %d times for empty text", n)
	}

	sums, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("expected no stored summaries, got %d", len(sums))
	}
}

func TestSummarizeUploadModelFailure(t *testing.T) {
	provider := &fakeProvider{fail: true}
	repo := NewMemoryRepo()
	svc := newTestService(provider, repo)

	_, err := svc.SummarizeUpload(context.Background(), "user-1", "notes.txt", strings.NewReader("some text"))
	var modelErr *summarize.ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("expected ModelError, got %v", err)
	}
	if modelErr.Provider != "fake" {
		t.Fatalf("unexpected provider %q", modelErr.Provider)
	}

	sums, err := repo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("failed summarization must not be persisted, got %d records", len(sums))
	}
}

func TestSummarizeUploadSaveFailureStillReturnsSummary(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider, failingRepo{})

	res, err := svc.SummarizeUpload(context.Background(), "user-1", "notes.txt", strings.NewReader("some text"))
	if err != nil {
		t.Fatalf("SummarizeUpload: %v", err)
	}
	if res.Saved {
		t.Fatalf("Saved must be false when the repo fails")
	}
	if res.Warning == "" {
		t.Fatalf("expected a warning about the failed save")
	}
	if res.Summary.Summary != "summary" {
		t.Fatalf("summary should survive a failed save, got %q", res.Summary.Summary)
	}
}
