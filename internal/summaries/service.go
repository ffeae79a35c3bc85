package summaries

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"smartdoc-backend/internal/extract"
	"smartdoc-backend/internal/shared/storage/object"
	"smartdoc-backend/internal/shared/telemetry"
	"smartdoc-backend/internal/summarize"
)

// UploadResult is the outcome of running a document through the pipeline.
type UploadResult struct {
	Summary Summary
	// Saved reports whether the summary record was persisted. A false value
	// with a non-empty Warning means the summary itself is still usable.
	Saved   bool
	Notice  string
	Warning string
}

// Service runs the upload-to-summary pipeline and reads back stored summaries.
type Service struct {
	Store  object.ObjectStore
	Repo   SummariesRepo
	Engine *summarize.Engine
}

// SummarizeUpload saves the raw file, extracts its text, summarizes it chunk
// by chunk, and persists the result for the user. The file format is checked
// before anything else touches the payload.
func (s *Service) SummarizeUpload(ctx context.Context, userId, fileName string, r io.Reader) (UploadResult, error) {
	if userId == "" {
		return UploadResult{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if fileName == "" {
		return UploadResult{}, fmt.Errorf("%w: file name required", ErrInvalidInput)
	}
	if !extract.SupportedExtension(fileName) {
		return UploadResult{}, ErrUnsupportedFormat
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}

	// A storage outage should not block summarization, so the raw-file save
	// degrades to a logged warning and an empty storage key.
	storageKey := ""
	if s.Store != nil {
		key, _, _, saveErr := s.Store.Save(ctx, userId, fileName, bytes.NewReader(data))
		if saveErr != nil {
			telemetry.Warn("object store save failed", map[string]any{
				"user_id":   userId,
				"file_name": fileName,
				"error":     saveErr.Error(),
			})
		} else {
			storageKey = key
		}
	}

	text, err := extract.Text(ctx, data, fileName)
	if err != nil {
		return UploadResult{}, err
	}

	summaryText, err := s.Engine.SummarizeLong(ctx, text)
	if err != nil {
		return UploadResult{}, err
	}

	rec := Summary{
		ID:         uuid.NewString(),
		UserID:     userId,
		FileName:   fileName,
		StorageKey: storageKey,
		Summary:    summaryText,
		CreatedAt:  time.Now().UTC(),
	}

	// The no-content sentinel is shown to the caller but never persisted.
	if summaryText == summarize.NoContentResult {
		return UploadResult{
			Summary: rec,
			Notice:  summarize.NoContentResult,
		}, nil
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		telemetry.Warn("summary save failed", map[string]any{
			"user_id":    userId,
			"summary_id": rec.ID,
			"error":      err.Error(),
		})
		return UploadResult{
			Summary: rec,
			Warning: "summary could not be saved to history",
		}, nil
	}

	return UploadResult{Summary: rec, Saved: true}, nil
}

// List returns the user's summaries, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Summary, error) {
	if userId == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

// Get fetches one summary owned by the user.
func (s *Service) Get(ctx context.Context, userId, summaryID string) (Summary, error) {
	if userId == "" || summaryID == "" {
		return Summary{}, fmt.Errorf("%w: user id and summary id required", ErrInvalidInput)
	}
	sum, err := s.Repo.GetByID(ctx, userId, summaryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	return sum, nil
}
